package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MealType is the meal a recipe is intended for.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes lists the meal types in the order they occur during a day.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// ParseMealType accepts any casing of a known meal type.
func ParseMealType(s string) (MealType, error) {
	mt := MealType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range MealTypes {
		if mt == known {
			return mt, nil
		}
	}
	return "", fmt.Errorf("unknown meal type %q", s)
}

// Order returns the position of the meal type within a day.
func (m MealType) Order() int {
	for i, known := range MealTypes {
		if m == known {
			return i
		}
	}
	return len(MealTypes)
}

type Recipe struct {
	Base
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Name            string           `gorm:"size:255;not null" json:"name"`
	Cuisine         string           `gorm:"size:100" json:"cuisine,omitempty"`
	IngredientLines JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredient_lines"`
	CookTimeMinutes *int             `json:"cook_time_minutes,omitempty"`
	MealType        MealType         `gorm:"size:20;not null;index" json:"meal_type"`
}
