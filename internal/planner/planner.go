// Package planner assembles a non-repeating weekly meal plan from a recipe pool.
package planner

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/model"
	"github.com/pageza/harvestplan/backend/internal/produce"
)

const (
	// MaxDays bounds a single generation run.
	MaxDays = 31

	ReasonNoCandidates = "no candidates"
	ReasonReused       = "reused: candidate pool smaller than slot count"

	dateKey = "2006-01-02"
)

// Request describes one generation run.
type Request struct {
	StartDate time.Time
	Days      int
	// MealTypes requested for every day. Defaults to dinner.
	MealTypes  []model.MealType
	Candidates []model.Recipe
	// Cuisines, when set, restricts the pool to these cuisines.
	Cuisines []string
	// Disliked recipe IDs or names excluded from every slot.
	Disliked []string
	// DislikedByDate holds exclusions for a single day, keyed by YYYY-MM-DD.
	DislikedByDate map[string][]string
	// DislikedByMeal narrows a day's exclusions to one meal type.
	DislikedByMeal  map[string]map[model.MealType][]string
	BalanceCuisines bool
	// Inventory, when present, lets match and urgency break ties.
	Inventory []model.InventoryItem
	Now       time.Time
}

type Slot struct {
	Date            time.Time      `json:"date"`
	MealType        model.MealType `json:"meal_type"`
	RecipeID        *uuid.UUID     `json:"recipe_id"`
	RecipeName      string         `json:"recipe_name,omitempty"`
	Cuisine         string         `json:"cuisine,omitempty"`
	CookTimeMinutes *int           `json:"cook_time_minutes,omitempty"`
	Score           int            `json:"score"`
	Degraded        bool           `json:"degraded"`
	Reason          string         `json:"reason,omitempty"`
}

type Plan struct {
	Slots    []Slot `json:"slots"`
	Degraded bool   `json:"degraded"`
	Unfilled int    `json:"unfilled"`
}

// Generator fills plan slots. It is not safe for concurrent use when its
// RandomSource is not.
type Generator struct {
	scorer *produce.Scorer
	random RandomSource
}

func NewGenerator(scorer *produce.Scorer, random RandomSource) *Generator {
	if scorer == nil {
		scorer = produce.NewScorer(produce.ScorerOptions{})
	}
	if random == nil {
		random = TopPick{}
	}
	return &Generator{scorer: scorer, random: random}
}

// Generate walks the slots in chronological order and assigns one recipe to
// each. A recipe is used at most once per run unless the eligible pool for a
// slot is exhausted, in which case the least recently assigned one is reused
// and the slot is marked degraded. An empty pool leaves the slot unfilled.
func (g *Generator) Generate(req Request) (Plan, error) {
	if req.Days <= 0 || req.Days > MaxDays {
		return Plan{}, fmt.Errorf("%w: days must be between 1 and %d, got %d", apperr.ErrInvalidInput, MaxDays, req.Days)
	}
	mealTypes, err := normalizeMealTypes(req.MealTypes)
	if err != nil {
		return Plan{}, err
	}

	now := req.Now
	if now.IsZero() {
		now = req.StartDate
	}
	stock, errs := produce.BuildStock(req.Inventory, now)
	for _, err := range errs {
		log.Printf("[Planner] skipping inventory record: %v", err)
	}

	pool := filterCuisines(req.Candidates, req.Cuisines)
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].ID.String() < pool[j].ID.String()
	})

	disliked := toSet(req.Disliked)
	lastAssigned := map[uuid.UUID]int{}
	var history []produce.HistoryEntry

	start := dayStart(req.StartDate)
	plan := Plan{Slots: make([]Slot, 0, req.Days*len(mealTypes))}

	for d := 0; d < req.Days; d++ {
		date := start.AddDate(0, 0, d)
		key := date.Format(dateKey)
		todayDisliked := toSet(req.DislikedByDate[key])

		for _, mt := range mealTypes {
			slot := Slot{Date: date, MealType: mt}
			index := len(plan.Slots)
			mealDisliked := toSet(req.DislikedByMeal[key][mt])

			var eligible, unused []model.Recipe
			for _, r := range pool {
				if r.MealType != mt || isDisliked(r, disliked) || isDisliked(r, todayDisliked) || isDisliked(r, mealDisliked) {
					continue
				}
				eligible = append(eligible, r)
				if _, used := lastAssigned[r.ID]; !used {
					unused = append(unused, r)
				}
			}

			switch {
			case len(eligible) == 0:
				slot.Reason = ReasonNoCandidates
				plan.Unfilled++
			case len(unused) == 0:
				chosen := leastRecentlyAssigned(eligible, lastAssigned)
				g.assign(&slot, chosen, g.score(chosen, stock, history, req.BalanceCuisines))
				slot.Degraded = true
				slot.Reason = ReasonReused
				plan.Degraded = true
			default:
				chosen, score := g.pickTopTier(unused, stock, history, req.BalanceCuisines)
				g.assign(&slot, chosen, score)
			}

			if slot.RecipeID != nil {
				lastAssigned[*slot.RecipeID] = index
				history = append(history, produce.HistoryEntry{RecipeID: *slot.RecipeID, Cuisine: slot.Cuisine})
			}
			plan.Slots = append(plan.Slots, slot)
		}
	}
	return plan, nil
}

func (g *Generator) score(r model.Recipe, stock []produce.StockItem, history []produce.HistoryEntry, balance bool) int {
	if !balance {
		history = nil
	}
	return g.scorer.Score(r, stock, history).TotalScore
}

// pickTopTier chooses uniformly among the candidates sharing the best score.
func (g *Generator) pickTopTier(candidates []model.Recipe, stock []produce.StockItem, history []produce.HistoryEntry, balance bool) (model.Recipe, int) {
	best := -1
	var tier []model.Recipe
	for _, r := range candidates {
		s := g.score(r, stock, history, balance)
		switch {
		case s > best:
			best = s
			tier = append(tier[:0], r)
		case s == best:
			tier = append(tier, r)
		}
	}
	i := g.random.NextInRange(len(tier))
	if i < 0 || i >= len(tier) {
		i = 0
	}
	return tier[i], best
}

func (g *Generator) assign(slot *Slot, r model.Recipe, score int) {
	id := r.ID
	slot.RecipeID = &id
	slot.RecipeName = r.Name
	slot.Cuisine = r.Cuisine
	slot.CookTimeMinutes = r.CookTimeMinutes
	slot.Score = score
}

func leastRecentlyAssigned(eligible []model.Recipe, lastAssigned map[uuid.UUID]int) model.Recipe {
	chosen := eligible[0]
	for _, r := range eligible[1:] {
		if lastAssigned[r.ID] < lastAssigned[chosen.ID] {
			chosen = r
		}
	}
	return chosen
}

func normalizeMealTypes(in []model.MealType) ([]model.MealType, error) {
	if len(in) == 0 {
		return []model.MealType{model.MealDinner}, nil
	}
	seen := map[model.MealType]bool{}
	out := make([]model.MealType, 0, len(in))
	for _, raw := range in {
		mt, err := model.ParseMealType(string(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
		}
		if !seen[mt] {
			seen[mt] = true
			out = append(out, mt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order() < out[j].Order() })
	return out, nil
}

func filterCuisines(recipes []model.Recipe, cuisines []string) []model.Recipe {
	if len(cuisines) == 0 {
		return append([]model.Recipe(nil), recipes...)
	}
	want := toSet(cuisines)
	var out []model.Recipe
	for _, r := range recipes {
		if want[normalize(r.Cuisine)] {
			out = append(out, r)
		}
	}
	return out
}

func isDisliked(r model.Recipe, set map[string]bool) bool {
	if len(set) == 0 {
		return false
	}
	return set[normalize(r.ID.String())] || set[normalize(r.Name)]
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if n := normalize(v); n != "" {
			set[n] = true
		}
	}
	return set
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
