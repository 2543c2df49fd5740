package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pageza/harvestplan/backend/internal/produce"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration. An empty RedisURL disables Redis.
	RedisURL string

	// JWT configuration
	JWTSecret string
	TokenTTL  time.Duration

	Engine EngineConfig
}

// EngineConfig tunes suggestion scoring and week planning.
type EngineConfig struct {
	Weights         produce.Weights
	DiversityWindow int
	// HistoryRecord is how many top suggestions are remembered per request.
	HistoryRecord int
	// PlanRateLimit is the number of week plans a user may generate per minute.
	PlanRateLimit int
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	var src source
	switch env {
	case CI:
			// CI provides secrets through the environment only
		src = source{useEnv: true}
	case Development, Test:
		src = source{useEnv: true, useSecrets: true, devSecrets: true}
	case Production:
		src = source{useEnv: true, useSecrets: true, secretsFirst: true}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	cfg, err := load(src)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func load(src source) (*Config, error) {
	cfg := &Config{
		ServerPort: src.get("SERVER_PORT", "8080"),
		ServerHost: src.get("SERVER_HOST", "0.0.0.0"),
		DBDriver:   strings.ToLower(src.get("DB_DRIVER", DriverPostgres)),
		DBHost:     src.get("DB_HOST", "localhost"),
		DBPort:     src.get("DB_PORT", "5432"),
		DBUser:     src.get("DB_USER", "postgres"),
		DBPassword: src.sensitive("DB_PASSWORD", "postgres"),
		DBName:     src.get("DB_NAME", "harvestplan"),
		DBSSLMode:  src.get("DB_SSL_MODE", "disable"),
		SQLitePath: src.get("SQLITE_PATH", "harvestplan.db"),
		RedisURL:   src.get("REDIS_URL", ""),
		JWTSecret:  src.sensitive("JWT_SECRET", "dev-jwt-secret"),
	}
	if origins := src.get("CORS_ORIGINS", "*"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	var errs []string
	ttlHours := src.getInt("TOKEN_TTL_HOURS", 24, &errs)
	cfg.TokenTTL = time.Duration(ttlHours) * time.Hour

	cfg.Engine = EngineConfig{
		Weights: produce.Weights{
			Match:     src.getFloat("WEIGHT_MATCH", produce.DefaultWeights.Match, &errs),
			Urgency:   src.getFloat("WEIGHT_URGENCY", produce.DefaultWeights.Urgency, &errs),
			Diversity: src.getFloat("WEIGHT_DIVERSITY", produce.DefaultWeights.Diversity, &errs),
		},
		DiversityWindow: src.getInt("DIVERSITY_WINDOW", produce.DefaultDiversityWindow, &errs),
		HistoryRecord:   src.getInt("SUGGESTION_HISTORY_RECORD", 3, &errs),
		PlanRateLimit:   src.getInt("PLAN_RATE_LIMIT", 10, &errs),
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// source resolves a setting from the environment or a Docker secret named
// after the lowercased key, in the configured order, then falls back to a
// default. Sensitive settings only fall back when devSecrets is set.
type source struct {
	useEnv       bool
	useSecrets   bool
	devSecrets   bool
	secretsFirst bool
}

func (s source) get(key, def string) string {
	if v := s.lookup(key); v != "" {
		return v
	}
	return def
}

func (s source) sensitive(key, devDefault string) string {
	if v := s.lookup(key); v != "" || !s.devSecrets {
		return v
	}
	return devDefault
}

func (s source) lookup(key string) string {
	lookups := []func(string) string{}
	if s.useEnv {
		lookups = append(lookups, os.Getenv)
	}
	if s.useSecrets {
		secret := func(k string) string { return readSecret(strings.ToLower(k)) }
		if s.secretsFirst {
			lookups = append([]func(string) string{secret}, lookups...)
		} else {
			lookups = append(lookups, secret)
		}
	}
	for _, lookup := range lookups {
		if v := lookup(key); v != "" {
			return v
		}
	}
	return ""
}

func (s source) getInt(key string, def int, errs *[]string) int {
	raw := s.lookup(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s must be an integer, got %q", key, raw))
		return def
	}
	return v
}

func (s source) getFloat(key string, def float64, errs *[]string) float64 {
	raw := s.lookup(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s must be a number, got %q", key, raw))
		return def
	}
	return v
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
