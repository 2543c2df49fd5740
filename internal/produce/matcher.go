package produce

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/pageza/harvestplan/backend/internal/model"
)

// Normalizer canonicalizes free text for comparison.
type Normalizer interface {
	// Normalize lowercases and strips punctuation.
	Normalize(s string) string
	// IngredientName pulls the ingredient out of a recipe line, dropping
	// quantities, units and trailing descriptors.
	IngredientName(line string) string
}

// Matcher decides which stock items a recipe consumes.
type Matcher interface {
	Match(recipe model.Recipe, stock []StockItem) MatchResult
}

// StockItem is an unused inventory item paired with its urgency.
type StockItem struct {
	Item    model.InventoryItem
	Urgency Urgency
}

// MatchedItem records which recipe line claimed which inventory item.
type MatchedItem struct {
	ItemID        uuid.UUID   `json:"item_id"`
	Name          string      `json:"name"`
	Line          string      `json:"line"`
	Tier          UrgencyTier `json:"tier"`
	DaysRemaining int         `json:"days_remaining"`
}

type MatchResult struct {
	RecipeID                   uuid.UUID     `json:"recipe_id"`
	MatchedIngredients         []string      `json:"matched_ingredients"`
	MissingIngredients         []string      `json:"missing_ingredients"`
	ExpiringMatchedIngredients []string      `json:"expiring_matched_ingredients"`
	MatchedLines               int           `json:"matched_lines"`
	TotalLines                 int           `json:"total_lines"`
	Matched                    []MatchedItem `json:"-"`
}

// BuildStock assesses every unused item and orders the result by urgency, most
// urgent first, so expiring items are claimed before fresher duplicates.
// Invalid records are skipped and reported.
func BuildStock(items []model.InventoryItem, now time.Time) ([]StockItem, []error) {
	stock := make([]StockItem, 0, len(items))
	var errs []error
	for _, item := range items {
		if item.IsUsed {
			continue
		}
		u, err := AssessItem(item, now)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		stock = append(stock, StockItem{Item: item, Urgency: u})
	}
	sort.SliceStable(stock, func(i, j int) bool {
		a, b := stock[i], stock[j]
		if a.Urgency.DaysRemaining != b.Urgency.DaysRemaining {
			return a.Urgency.DaysRemaining < b.Urgency.DaysRemaining
		}
		an, bn := strings.ToLower(a.Item.Name), strings.ToLower(b.Item.Name)
		if an != bn {
			return an < bn
		}
		return a.Item.ID.String() < b.Item.ID.String()
	})
	return stock, errs
}

// ContainmentMatcher matches an item to a line when either contains the other
// after normalization. It tolerates plurals, descriptors and quantity prefixes
// and never fails on malformed text.
type ContainmentMatcher struct {
	Normalizer Normalizer
}

// NewContainmentMatcher returns a matcher using TextNormalizer.
func NewContainmentMatcher() *ContainmentMatcher {
	return &ContainmentMatcher{Normalizer: TextNormalizer{}}
}

func (m *ContainmentMatcher) Match(recipe model.Recipe, stock []StockItem) MatchResult {
	norm := m.Normalizer
	if norm == nil {
		norm = TextNormalizer{}
	}

	names := make([]string, len(stock))
	for i, s := range stock {
		names[i] = norm.Normalize(s.Item.Name)
	}

	res := MatchResult{
		RecipeID:                   recipe.ID,
		MatchedIngredients:         []string{},
		MissingIngredients:         []string{},
		ExpiringMatchedIngredients: []string{},
	}
	matched := map[string]bool{}
	missing := map[string]bool{}

	for _, line := range recipe.IngredientLines {
		canon := norm.Normalize(line)
		if canon == "" {
			continue
		}
		res.TotalLines++
		ingredient := norm.IngredientName(line)

		claimed := -1
		for i, name := range names {
			if name == "" {
				continue
			}
			if strings.Contains(canon, name) || (ingredient != "" && strings.Contains(name, ingredient)) {
				claimed = i
				break
			}
		}

		if claimed < 0 {
			label := ingredient
			if label == "" {
				label = canon
			}
			if !missing[label] {
				missing[label] = true
				res.MissingIngredients = append(res.MissingIngredients, label)
			}
			continue
		}

		res.MatchedLines++
		s := stock[claimed]
		res.Matched = append(res.Matched, MatchedItem{
			ItemID:        s.Item.ID,
			Name:          names[claimed],
			Line:          line,
			Tier:          s.Urgency.Tier,
			DaysRemaining: s.Urgency.DaysRemaining,
		})
		if matched[names[claimed]] {
			continue
		}
		matched[names[claimed]] = true
		res.MatchedIngredients = append(res.MatchedIngredients, names[claimed])
		if s.Urgency.Tier.Expiring() {
			res.ExpiringMatchedIngredients = append(res.ExpiringMatchedIngredients, names[claimed])
		}
	}
	return res
}

// TextNormalizer is the default Normalizer.
type TextNormalizer struct{}

func (TextNormalizer) Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r):
			b.WriteRune(r)
		case r == '/' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func (n TextNormalizer) IngredientName(line string) string {
	line = strings.ToLower(line)
	if i := strings.IndexAny(line, ",("); i >= 0 {
		line = line[:i]
	}
	tokens := strings.Fields(n.Normalize(line))
	for len(tokens) > 0 && (isQuantity(tokens[0]) || measureWords[tokens[0]]) {
		tokens = tokens[1:]
	}
	return strings.Trim(strings.Join(tokens, " "), "./")
}

func isQuantity(tok string) bool {
	for _, r := range tok {
		if !unicode.IsNumber(r) && r != '/' && r != '.' {
			return false
		}
	}
	return true
}

var measureWords = map[string]bool{
	"a": true, "an": true, "of": true,
	"c": true, "cup": true, "cups": true,
	"tbsp": true, "tablespoon": true, "tablespoons": true,
	"tsp": true, "teaspoon": true, "teaspoons": true,
	"oz": true, "ounce": true, "ounces": true,
	"lb": true, "lbs": true, "pound": true, "pounds": true,
	"g": true, "gram": true, "grams": true, "kg": true,
	"ml": true, "l": true, "liter": true, "liters": true, "litre": true, "litres": true,
	"clove": true, "cloves": true, "bunch": true, "bunches": true,
	"head": true, "heads": true, "pinch": true, "dash": true,
	"can": true, "cans": true, "package": true, "packages": true, "pkg": true,
	"slice": true, "slices": true, "piece": true, "pieces": true,
	"stalk": true, "stalks": true, "sprig": true, "sprigs": true,
	"handful": true, "handfuls": true,
	"large": true, "medium": true, "small": true,
}
