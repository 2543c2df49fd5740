package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}


// ValidateConfig checks the loaded configuration and reports every problem at once.
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var problems []ValidationError

	// Secrets never fall back to defaults outside development and test
	if cfg.JWTSecret == "" {
		problems = append(problems, ValidationError{Field: "JWT_SECRET", Message: "is required in " + string(env)})
	}
	if cfg.DBDriver == DriverPostgres && cfg.DBPassword == "" {
		problems = append(problems, ValidationError{Field: "DB_PASSWORD", Message: "is required in " + string(env)})
	}

	switch cfg.DBDriver {
	case DriverPostgres:
	case DriverSQLite:
		if env == Production {
			problems = append(problems, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not supported in production"})
		}
	default:
		problems = append(problems, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unknown driver %q", cfg.DBDriver)})
	}

	if cfg.ServerPort == "" {
		problems = append(problems, ValidationError{Field: "SERVER_PORT", Message: "is required"})
	}
	if cfg.TokenTTL <= 0 {
		problems = append(problems, ValidationError{Field: "TOKEN_TTL_HOURS", Message: "must be positive"})
	}

	e := cfg.Engine
	if e.Weights.Match < 0 || e.Weights.Urgency < 0 || e.Weights.Diversity < 0 {
		problems = append(problems, ValidationError{Field: "WEIGHT_*", Message: "weights must not be negative"})
	}
	if e.DiversityWindow <= 0 {
		problems = append(problems, ValidationError{Field: "DIVERSITY_WINDOW", Message: "must be positive"})
	}
	if e.HistoryRecord < 0 {
		problems = append(problems, ValidationError{Field: "SUGGESTION_HISTORY_RECORD", Message: "must not be negative"})
	}
	if e.PlanRateLimit < 0 {
		problems = append(problems, ValidationError{Field: "PLAN_RATE_LIMIT", Message: "must not be negative"})
	}

	if len(problems) > 0 {
		lines := make([]string, len(problems))
		for i, p := range problems {
			lines[i] = p.Error()
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
	}

	return nil
}
