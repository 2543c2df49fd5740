package produce

import (
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/harvestplan/backend/internal/model"
)

// DefaultDiversityWindow is how many recent suggestions the diversity penalty looks at.
const DefaultDiversityWindow = 10

// Weights combine the three component scores into the total.
type Weights struct {
	Match     float64 `json:"match" mapstructure:"match"`
	Urgency   float64 `json:"urgency" mapstructure:"urgency"`
	Diversity float64 `json:"diversity" mapstructure:"diversity"`
}

// DefaultWeights is the single weighting used by both the produce and CSA views.
var DefaultWeights = Weights{Match: 0.4, Urgency: 0.4, Diversity: 0.2}

// HistoryEntry is one previously shown suggestion.
type HistoryEntry struct {
	RecipeID uuid.UUID `json:"recipe_id"`
	Cuisine  string    `json:"cuisine"`
}

// ScorerOptions configures a Scorer. Zero values fall back to defaults.
type ScorerOptions struct {
	Matcher         Matcher
	Weights         Weights
	DiversityWindow int
	CriticalWeight  float64
	WarningWeight   float64
}

type Scorer struct {
	matcher        Matcher
	weights        Weights
	window         int
	criticalWeight float64
	warningWeight  float64
}

// RankedSuggestion is a scored recipe together with its match explanation.
type RankedSuggestion struct {
	RecipeID       uuid.UUID `json:"recipe_id"`
	RecipeName     string    `json:"recipe_name"`
	Cuisine        string    `json:"cuisine,omitempty"`
	MatchScore     float64   `json:"match_score"`
	DiversityScore float64   `json:"diversity_score"`
	UrgencyScore   float64   `json:"urgency_score"`
	TotalScore     int       `json:"total_score"`
	MatchResult
}

func NewScorer(opts ScorerOptions) *Scorer {
	s := &Scorer{
		matcher:        opts.Matcher,
		weights:        opts.Weights,
		window:         opts.DiversityWindow,
		criticalWeight: opts.CriticalWeight,
		warningWeight:  opts.WarningWeight,
	}
	if s.matcher == nil {
		s.matcher = NewContainmentMatcher()
	}
	if s.weights == (Weights{}) {
		s.weights = DefaultWeights
	}
	if s.window <= 0 {
		s.window = DefaultDiversityWindow
	}
	if s.criticalWeight == 0 {
		s.criticalWeight = 1.0
	}
	if s.warningWeight == 0 {
		s.warningWeight = 0.5
	}
	return s
}

// Window returns the number of history entries the diversity penalty considers.
func (s *Scorer) Window() int {
	return s.window
}

// Score computes all components for one recipe. Unlike Rank it scores recipes
// with no matches too, which the week planner relies on.
func (s *Scorer) Score(recipe model.Recipe, stock []StockItem, history []HistoryEntry) RankedSuggestion {
	res := s.matcher.Match(recipe, stock)

	var match float64
	if res.TotalLines > 0 {
		match = 100 * float64(res.MatchedLines) / float64(res.TotalLines)
	}

	urgency := s.urgencyScore(res)
	diversity := 100 * (1 - s.penalty(recipe, history))
	total := math.Round(s.weights.Match*match + s.weights.Urgency*urgency + s.weights.Diversity*diversity)

	return RankedSuggestion{
		RecipeID:       recipe.ID,
		RecipeName:     recipe.Name,
		Cuisine:        recipe.Cuisine,
		MatchScore:     match,
		DiversityScore: diversity,
		UrgencyScore:   urgency,
		TotalScore:     int(total),
		MatchResult:    res,
	}
}

// urgencyScore weights each distinct matched ingredient by the tier of the
// item that first claimed it.
func (s *Scorer) urgencyScore(res MatchResult) float64 {
	if len(res.MatchedIngredients) == 0 {
		return 0
	}
	seen := map[string]bool{}
	var weighted float64
	for _, m := range res.Matched {
		if seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		switch m.Tier {
		case TierCritical:
			weighted += s.criticalWeight
		case TierWarning:
			weighted += s.warningWeight
		}
	}
	score := 100 * weighted / float64(len(res.MatchedIngredients))
	return math.Max(0, math.Min(100, score))
}

// penalty is the share of the last window history entries that repeat this
// recipe or its cuisine.
func (s *Scorer) penalty(recipe model.Recipe, history []HistoryEntry) float64 {
	if len(history) > s.window {
		history = history[len(history)-s.window:]
	}
	cuisine := strings.ToLower(strings.TrimSpace(recipe.Cuisine))
	hits := 0
	for _, h := range history {
		if h.RecipeID == recipe.ID && recipe.ID != uuid.Nil {
			hits++
			continue
		}
		if cuisine != "" && strings.ToLower(strings.TrimSpace(h.Cuisine)) == cuisine {
			hits++
		}
	}
	return float64(hits) / float64(s.window)
}

// Rank scores recipes against the unused inventory and returns only recipes
// with at least one matched ingredient, best first. history is ordered oldest
// to newest. Invalid inventory records are skipped and returned alongside the
// ranking; they never abort it.
func (s *Scorer) Rank(recipes []model.Recipe, inventory []model.InventoryItem, history []HistoryEntry, now time.Time) ([]RankedSuggestion, []error) {
	stock, errs := BuildStock(inventory, now)
	for _, err := range errs {
		log.Printf("[Scorer] skipping inventory record: %v", err)
	}

	ranked := make([]RankedSuggestion, 0, len(recipes))
	if len(stock) == 0 {
		return ranked, errs
	}
	for _, recipe := range recipes {
		sug := s.Score(recipe, stock, history)
		if len(sug.MatchedIngredients) == 0 {
			continue
		}
		ranked = append(ranked, sug)
	}

	SortSuggestions(ranked)
	return ranked, errs
}

// SortSuggestions orders by total score, then urgency score, both descending,
// then recipe ID ascending.
func SortSuggestions(s []RankedSuggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].TotalScore != s[j].TotalScore {
			return s[i].TotalScore > s[j].TotalScore
		}
		if s[i].UrgencyScore != s[j].UrgencyScore {
			return s[i].UrgencyScore > s[j].UrgencyScore
		}
		return s[i].RecipeID.String() < s[j].RecipeID.String()
	})
}
