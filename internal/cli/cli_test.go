package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/harvestplan/backend/internal/planner"
	"github.com/pageza/harvestplan/backend/internal/timeline"
)

const (
	inventoryJSON = `[
  {"name": "kale", "acquired_date": "2024-11-18", "estimated_shelf_life_days": 2},
  {"name": "lemons", "acquired_date": "2024-11-10", "estimated_shelf_life_days": 30},
  {"name": "carrots", "acquired_date": "2024-11-01", "estimated_shelf_life_days": 40, "is_used": true}
]`
	recipesJSON = `[
  {"name": "Kale Salad", "cuisine": "American", "ingredient_lines": ["1 bunch kale", "1 lemon", "2 tbsp olive oil"]},
  {"name": "Carrot Soup", "cuisine": "French", "ingredient_lines": ["4 carrots", "1 onion"]},
  {"name": "Pad Thai", "cuisine": "Thai", "ingredient_lines": ["rice noodles"]}
]`
	dishesJSON = `[
  {"name": "Turkey", "prep_time_minutes": 30, "cook_time_minutes": 180},
  {"name": "Rolls", "prep_time_minutes": 5, "cook_time_minutes": 20},
  {"name": "Pie", "can_make_ahead": true, "make_ahead_lead_days": 1}
]`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var out bytes.Buffer
	cmd := NewRootCmd(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSuggestRanksExpiringProduce(t *testing.T) {
	dir := t.TempDir()
	inv := writeFile(t, dir, "inventory.json", inventoryJSON)
	rec := writeFile(t, dir, "recipes.json", recipesJSON)

	out, err := run(t, "suggest", "--inventory", inv, "--recipes", rec, "--now", "2024-11-18")
	require.NoError(t, err)

	var got suggestOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Suggestions, 1, "used carrots must not match")
	s := got.Suggestions[0]
	assert.Equal(t, "Kale Salad", s.RecipeName)
	assert.Equal(t, []string{"kale", "lemons"}, s.MatchedIngredients)
	assert.Equal(t, []string{"kale"}, s.ExpiringMatchedIngredients)
	assert.Equal(t, []string{"olive oil"}, s.MissingIngredients)
	// 0.4*66.67 + 0.4*50 + 0.2*100
	assert.Equal(t, 67, s.TotalScore)
}

func TestSuggestDefaultsAcquiredDateToNow(t *testing.T) {
	dir := t.TempDir()
	inv := writeFile(t, dir, "inventory.json", `[{"name": "kale", "estimated_shelf_life_days": 2}]`)
	rec := writeFile(t, dir, "recipes.json", recipesJSON)

	out, err := run(t, "suggest", "--inventory", inv, "--recipes", rec, "--now", "2024-11-18T09:00:00Z")
	require.NoError(t, err)

	var got suggestOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Empty(t, got.Skipped)
	require.Len(t, got.Suggestions, 1)
	assert.Equal(t, "Kale Salad", got.Suggestions[0].RecipeName)
	assert.Equal(t, []string{"kale"}, got.Suggestions[0].ExpiringMatchedIngredients)
}

func TestSuggestWeightsFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	inv := writeFile(t, dir, "inventory.json", inventoryJSON)
	rec := writeFile(t, dir, "recipes.json", recipesJSON)
	cfg := writeFile(t, dir, "mealctl.yaml", "weights:\n  match: 1\n  urgency: 0\n  diversity: 0\n")

	out, err := run(t, "--config", cfg, "suggest", "--inventory", inv, "--recipes", rec, "--now", "2024-11-18")
	require.NoError(t, err)

	var got suggestOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Suggestions, 1)
	assert.Equal(t, 67, got.Suggestions[0].TotalScore)
}

func TestSuggestWeightsFromEnv(t *testing.T) {
	dir := t.TempDir()
	inv := writeFile(t, dir, "inventory.json", inventoryJSON)
	rec := writeFile(t, dir, "recipes.json", recipesJSON)
	t.Setenv("MEALCTL_WEIGHTS_MATCH", "0")
	t.Setenv("MEALCTL_WEIGHTS_URGENCY", "1")
	t.Setenv("MEALCTL_WEIGHTS_DIVERSITY", "0")

	out, err := run(t, "suggest", "--inventory", inv, "--recipes", rec, "--now", "2024-11-18")
	require.NoError(t, err)

	var got suggestOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Suggestions, 1)
	assert.Equal(t, 50, got.Suggestions[0].TotalScore)
}

func TestSuggestTextOutput(t *testing.T) {
	dir := t.TempDir()
	inv := writeFile(t, dir, "inventory.json", inventoryJSON)
	rec := writeFile(t, dir, "recipes.json", recipesJSON)

	out, err := run(t, "--format", "text", "suggest", "--inventory", inv, "--recipes", rec, "--now", "2024-11-18")
	require.NoError(t, err)
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "Kale Salad")
}

func TestSuggestRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	rec := writeFile(t, dir, "recipes.json", recipesJSON)
	inv := writeFile(t, dir, "inventory.json", `[{"name": "kale", "acquired_date": "yesterday"}]`)

	_, err := run(t, "suggest", "--inventory", inv, "--recipes", rec)
	assert.ErrorContains(t, err, "acquired_date")

	_, err = run(t, "suggest", "--recipes", rec)
	assert.Error(t, err)

	_, err = run(t, "--format", "xml", "suggest", "--inventory", writeFile(t, dir, "empty.json", "[]"), "--recipes", rec)
	assert.ErrorContains(t, err, "unknown format")
}

func TestPlanTopPick(t *testing.T) {
	dir := t.TempDir()
	rec := writeFile(t, dir, "recipes.json", recipesJSON)

	out, err := run(t, "plan", "--recipes", rec, "--start", "2024-11-18", "--days", "4", "--top")
	require.NoError(t, err)

	var plan planner.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	require.Len(t, plan.Slots, 4)
	assert.True(t, plan.Degraded)
	assert.Zero(t, plan.Unfilled)
	seen := map[string]bool{}
	for _, s := range plan.Slots[:3] {
		require.NotNil(t, s.RecipeID)
		assert.False(t, seen[s.RecipeName], "repeated %s before pool was exhausted", s.RecipeName)
		seen[s.RecipeName] = true
	}
	assert.True(t, plan.Slots[3].Degraded)
}

func TestPlanSeedIsReproducible(t *testing.T) {
	dir := t.TempDir()
	rec := writeFile(t, dir, "recipes.json", recipesJSON)
	args := []string{"plan", "--recipes", rec, "--start", "2024-11-18", "--days", "3", "--seed", "42"}

	first, err := run(t, args...)
	require.NoError(t, err)
	second, err := run(t, args...)
	require.NoError(t, err)
	assert.JSONEq(t, first, second)
}

func TestPlanMissingMealType(t *testing.T) {
	dir := t.TempDir()
	rec := writeFile(t, dir, "recipes.json", recipesJSON)

	out, err := run(t, "--format", "text", "plan", "--recipes", rec, "--start", "2024-11-18", "--days", "1", "--meals", "breakfast", "--top")
	require.NoError(t, err)
	assert.Contains(t, out, planner.ReasonNoCandidates)
	assert.Contains(t, out, "1 slot(s) could not be filled")
}

func TestPlanInvalidFlags(t *testing.T) {
	dir := t.TempDir()
	rec := writeFile(t, dir, "recipes.json", recipesJSON)

	_, err := run(t, "plan", "--recipes", rec, "--start", "18/11/2024")
	assert.ErrorContains(t, err, "--start")

	_, err = run(t, "plan", "--recipes", rec, "--start", "2024-11-18", "--days", "0")
	assert.Error(t, err)

	_, err = run(t, "plan", "--recipes", rec, "--start", "2024-11-18", "--seed", "1", "--top")
	assert.Error(t, err)
}

func TestTimeline(t *testing.T) {
	dir := t.TempDir()
	dishes := writeFile(t, dir, "dishes.json", dishesJSON)

	out, err := run(t, "timeline", "--dishes", dishes, "--date", "2024-11-28", "--serve", "17:00")
	require.NoError(t, err)

	var tl timeline.Timeline
	require.NoError(t, json.Unmarshal([]byte(out), &tl))
	require.Len(t, tl.DayOf, 2)
	assert.Equal(t, "Turkey", tl.DayOf[0].Name)
	assert.Equal(t, "13:30", tl.DayOf[0].StartTime)
	assert.Equal(t, "14:00", tl.DayOf[0].CookStartTime)
	assert.Equal(t, "16:35", tl.DayOf[1].StartTime)
	require.Len(t, tl.MakeAhead, 1)
	assert.Equal(t, "the day before", tl.MakeAhead[0].When)
	assert.Equal(t, 27, tl.MakeAhead[0].DoByDate.Day())
}

func TestTimelineText(t *testing.T) {
	dir := t.TempDir()
	dishes := writeFile(t, dir, "dishes.json", dishesJSON)

	out, err := run(t, "--format", "text", "timeline", "--dishes", dishes, "--date", "2024-11-28", "--serve", "17:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Make ahead:")
	assert.Contains(t, out, "Pie (the day before)")
	assert.Contains(t, out, "serving at 17:00")
}

func TestTimelineBadServingTime(t *testing.T) {
	dir := t.TempDir()
	dishes := writeFile(t, dir, "dishes.json", dishesJSON)

	_, err := run(t, "timeline", "--dishes", dishes, "--date", "2024-11-28", "--serve", "5pm")
	assert.ErrorContains(t, err, "HH:MM")
}
