package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/harvestplan/backend/internal/model"
	"github.com/pageza/harvestplan/backend/internal/produce"
)

const dateLayout = "2006-01-02"

// idSpace derives stable IDs for records that omit one, so repeated runs
// break ties the same way.
var idSpace = uuid.MustParse("6f1d7a3e-5b0c-4c1e-9a57-3d2f8e6b9c10")

type inventoryRecord struct {
	ID                     uuid.UUID `json:"id"`
	Name                   string    `json:"name"`
	Quantity               *float64  `json:"quantity"`
	Unit                   string    `json:"unit"`
	AcquiredDate           string    `json:"acquired_date"`
	EstimatedShelfLifeDays int       `json:"estimated_shelf_life_days"`
	IsUsed                 bool      `json:"is_used"`
}

func readJSON(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func stableID(kind string, i int, name string) uuid.UUID {
	return uuid.NewSHA1(idSpace, []byte(fmt.Sprintf("%s/%d/%s", kind, i, strings.ToLower(name))))
}

// parseInstant accepts a date or an RFC3339 timestamp. Dates are midnight in loc.
func parseInstant(field, s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD or RFC3339, got %q", produce.ErrInvalidInput, field, s)
	}
	return t, nil
}

func loadInventory(path string, now time.Time) ([]model.InventoryItem, error) {
	var records []inventoryRecord
	if err := readJSON(path, &records); err != nil {
		return nil, err
	}
	items := make([]model.InventoryItem, 0, len(records))
	for i, r := range records {
		item := model.InventoryItem{
			Name:                   r.Name,
			Quantity:               r.Quantity,
			Unit:                   r.Unit,
			AcquiredDate:           now,
			EstimatedShelfLifeDays: r.EstimatedShelfLifeDays,
		}
		item.ID = r.ID
		if item.ID == uuid.Nil {
			item.ID = stableID("inventory", i, r.Name)
		}
		if r.AcquiredDate != "" {
			acquired, err := parseInstant(fmt.Sprintf("inventory[%d].acquired_date", i), r.AcquiredDate, now.Location())
			if err != nil {
				return nil, err
			}
			item.AcquiredDate = acquired
		}
		if r.IsUsed {
			item.MarkUsed(now)
		}
		items = append(items, item)
	}
	return items, nil
}

func loadRecipes(path string) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := readJSON(path, &recipes); err != nil {
		return nil, err
	}
	for i := range recipes {
		if recipes[i].ID == uuid.Nil {
			recipes[i].ID = stableID("recipe", i, recipes[i].Name)
		}
		if recipes[i].MealType == "" {
			recipes[i].MealType = model.MealDinner
		}
	}
	return recipes, nil
}

func loadHistory(path string) ([]produce.HistoryEntry, error) {
	if path == "" {
		return nil, nil
	}
	var history []produce.HistoryEntry
	if err := readJSON(path, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func loadDishes(path string) ([]model.Dish, error) {
	var dishes []model.Dish
	if err := readJSON(path, &dishes); err != nil {
		return nil, err
	}
	for i := range dishes {
		if dishes[i].ID == uuid.Nil {
			dishes[i].ID = stableID("dish", i, dishes[i].Name)
		}
	}
	return dishes, nil
}

func writeJSON(a *app, v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
