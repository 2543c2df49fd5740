package planner

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2024, time.November, 18, 0, 0, 0, 0, time.UTC)

func newRecipe(n int, name, cuisine string, mt model.MealType, lines ...string) model.Recipe {
	r := model.Recipe{
		Name:            name,
		Cuisine:         cuisine,
		MealType:        mt,
		IngredientLines: model.JSONBStringArray(lines),
	}
	r.ID = uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
	return r
}

func dinners(n int) []model.Recipe {
	out := make([]model.Recipe, n)
	for i := range out {
		out[i] = newRecipe(i+1, fmt.Sprintf("Dinner %d", i+1), "", model.MealDinner)
	}
	return out
}

func TestGenerate_SmallPoolDegrades(t *testing.T) {
	g := NewGenerator(nil, NewSeededSource(7))
	plan, err := g.Generate(Request{
		StartDate:  monday,
		Days:       7,
		MealTypes:  []model.MealType{model.MealDinner},
		Candidates: dinners(3),
	})
	require.NoError(t, err)
	require.Len(t, plan.Slots, 7)
	assert.True(t, plan.Degraded)
	assert.Zero(t, plan.Unfilled)

	degraded := 0
	fresh := map[uuid.UUID]bool{}
	for i, s := range plan.Slots {
		require.NotNil(t, s.RecipeID, "slot %d left empty", i)
		if s.Degraded {
			degraded++
			assert.Equal(t, ReasonReused, s.Reason)
			continue
		}
		assert.False(t, fresh[*s.RecipeID], "recipe repeated without degradation")
		fresh[*s.RecipeID] = true
	}
	assert.Equal(t, 4, degraded)
	assert.Len(t, fresh, 3)

	// Reuse cycles through the least recently assigned recipe.
	for i := 3; i < 7; i++ {
		assert.Equal(t, *plan.Slots[i-3].RecipeID, *plan.Slots[i].RecipeID)
	}
}

func TestGenerate_NoRepeatsWhenPoolIsLargeEnough(t *testing.T) {
	g := NewGenerator(nil, NewSeededSource(42))
	plan, err := g.Generate(Request{
		StartDate:  monday,
		Days:       7,
		Candidates: dinners(10),
	})
	require.NoError(t, err)
	assert.False(t, plan.Degraded)

	seen := map[uuid.UUID]bool{}
	for _, s := range plan.Slots {
		require.NotNil(t, s.RecipeID)
		assert.False(t, s.Degraded)
		assert.False(t, seen[*s.RecipeID])
		seen[*s.RecipeID] = true
		assert.Equal(t, model.MealDinner, s.MealType)
	}
}

func TestGenerate_MissingMealTypeLeavesSlotUnfilled(t *testing.T) {
	g := NewGenerator(nil, TopPick{})
	plan, err := g.Generate(Request{
		StartDate:  monday,
		Days:       2,
		MealTypes:  []model.MealType{model.MealDinner, model.MealLunch},
		Candidates: dinners(2),
	})
	require.NoError(t, err)
	require.Len(t, plan.Slots, 4)
	assert.Equal(t, 2, plan.Unfilled)

	for _, s := range plan.Slots {
		if s.MealType == model.MealLunch {
			assert.Nil(t, s.RecipeID)
			assert.Equal(t, ReasonNoCandidates, s.Reason)
			assert.False(t, s.Degraded)
		} else {
			assert.NotNil(t, s.RecipeID)
		}
	}
	// Lunch is ordered before dinner within a day.
	assert.Equal(t, model.MealLunch, plan.Slots[0].MealType)
	assert.Equal(t, model.MealDinner, plan.Slots[1].MealType)
	assert.Equal(t, monday.AddDate(0, 0, 1), plan.Slots[2].Date)
}

func TestGenerate_ExcludesDisliked(t *testing.T) {
	pool := dinners(4)
	g := NewGenerator(nil, TopPick{})
	plan, err := g.Generate(Request{
		StartDate:  monday,
		Days:       2,
		Candidates: pool,
		Disliked:   []string{"dinner 1", pool[1].ID.String()},
		DislikedByDate: map[string][]string{
			"2024-11-18": {"Dinner 3"},
		},
	})
	require.NoError(t, err)
	require.Len(t, plan.Slots, 2)
	assert.Equal(t, pool[3].ID, *plan.Slots[0].RecipeID)
	assert.Equal(t, pool[2].ID, *plan.Slots[1].RecipeID)
}

func TestGenerate_MealExclusionsOnlyApplyToThatMeal(t *testing.T) {
	lunch := newRecipe(1, "Pizza", "Italian", model.MealLunch)
	dinner := newRecipe(2, "Pizza", "Italian", model.MealDinner)
	g := NewGenerator(nil, TopPick{})
	plan, err := g.Generate(Request{
		StartDate:  monday,
		Days:       2,
		MealTypes:  []model.MealType{model.MealLunch, model.MealDinner},
		Candidates: []model.Recipe{lunch, dinner},
		DislikedByMeal: map[string]map[model.MealType][]string{
			"2024-11-18": {model.MealLunch: {"pizza"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, plan.Slots, 4)
	assert.Nil(t, plan.Slots[0].RecipeID)
	assert.Equal(t, ReasonNoCandidates, plan.Slots[0].Reason)
	assert.Equal(t, dinner.ID, *plan.Slots[1].RecipeID)
	assert.Equal(t, lunch.ID, *plan.Slots[2].RecipeID)
}

func TestGenerate_AllDislikedIsNotRelaxed(t *testing.T) {
	g := NewGenerator(nil, TopPick{})
	plan, err := g.Generate(Request{
		StartDate:  monday,
		Days:       1,
		Candidates: dinners(1),
		Disliked:   []string{"Dinner 1"},
	})
	require.NoError(t, err)
	assert.Nil(t, plan.Slots[0].RecipeID)
	assert.Equal(t, ReasonNoCandidates, plan.Slots[0].Reason)
}

func TestGenerate_BalancesCuisines(t *testing.T) {
	pool := []model.Recipe{
		newRecipe(1, "Lasagna", "Italian", model.MealDinner),
		newRecipe(2, "Risotto", "Italian", model.MealDinner),
		newRecipe(3, "Pad Thai", "Thai", model.MealDinner),
		newRecipe(4, "Green Curry", "Thai", model.MealDinner),
	}
	g := NewGenerator(nil, TopPick{})
	plan, err := g.Generate(Request{
		StartDate:       monday,
		Days:            4,
		Candidates:      pool,
		BalanceCuisines: true,
	})
	require.NoError(t, err)

	var cuisines []string
	for _, s := range plan.Slots {
		cuisines = append(cuisines, s.Cuisine)
	}
	assert.Equal(t, []string{"Italian", "Thai", "Italian", "Thai"}, cuisines)
}

func TestGenerate_CuisineSelection(t *testing.T) {
	pool := []model.Recipe{
		newRecipe(1, "Lasagna", "Italian", model.MealDinner),
		newRecipe(2, "Pad Thai", "Thai", model.MealDinner),
	}
	g := NewGenerator(nil, TopPick{})
	plan, err := g.Generate(Request{
		StartDate:  monday,
		Days:       2,
		Candidates: pool,
		Cuisines:   []string{"thai"},
	})
	require.NoError(t, err)
	for _, s := range plan.Slots {
		assert.Equal(t, "Pad Thai", s.RecipeName)
	}
	assert.True(t, plan.Slots[1].Degraded)
}

func TestGenerate_InventoryBreaksTies(t *testing.T) {
	pool := []model.Recipe{
		newRecipe(1, "Pasta", "", model.MealDinner, "1 lb pasta"),
		newRecipe(2, "Kale Soup", "", model.MealDinner, "1 bunch kale", "stock"),
	}
	kale := model.InventoryItem{Name: "kale", AcquiredDate: monday, EstimatedShelfLifeDays: 2}
	kale.ID = uuid.New()

	g := NewGenerator(nil, TopPick{})
	plan, err := g.Generate(Request{
		StartDate:  monday,
		Days:       1,
		Candidates: pool,
		Inventory:  []model.InventoryItem{kale},
		Now:        monday.Add(9 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "Kale Soup", plan.Slots[0].RecipeName)
}

type lastPick struct{ calls []int }

func (l *lastPick) NextInRange(n int) int {
	l.calls = append(l.calls, n)
	return n - 1
}

func TestGenerate_RandomOnlyChoosesWithinTopTier(t *testing.T) {
	pool := []model.Recipe{
		newRecipe(1, "Kale Soup", "", model.MealDinner, "kale"),
		newRecipe(2, "Kale Salad", "", model.MealDinner, "kale"),
		newRecipe(3, "Toast", "", model.MealDinner, "bread"),
	}
	kale := model.InventoryItem{Name: "kale", AcquiredDate: monday, EstimatedShelfLifeDays: 9}
	kale.ID = uuid.New()

	src := &lastPick{}
	plan, err := NewGenerator(nil, src).Generate(Request{
		StartDate:  monday,
		Days:       1,
		Candidates: pool,
		Inventory:  []model.InventoryItem{kale},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, src.calls)
	assert.Equal(t, "Kale Salad", plan.Slots[0].RecipeName)
}

func TestGenerate_SameSeedSamePlan(t *testing.T) {
	req := Request{StartDate: monday, Days: 7, Candidates: dinners(12)}

	a, err := NewGenerator(nil, NewSeededSource(99)).Generate(req)
	require.NoError(t, err)
	b, err := NewGenerator(nil, NewSeededSource(99)).Generate(req)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_InvalidRequests(t *testing.T) {
	g := NewGenerator(nil, nil)

	_, err := g.Generate(Request{StartDate: monday, Days: 0})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = g.Generate(Request{StartDate: monday, Days: MaxDays + 1})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = g.Generate(Request{StartDate: monday, Days: 1, MealTypes: []model.MealType{"brunch"}})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestGenerate_EmptyPool(t *testing.T) {
	plan, err := NewGenerator(nil, nil).Generate(Request{StartDate: monday, Days: 3})
	require.NoError(t, err)
	assert.Len(t, plan.Slots, 3)
	assert.Equal(t, 3, plan.Unfilled)
	assert.False(t, plan.Degraded)
}
