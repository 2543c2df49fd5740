package model

import (
	"time"

	"github.com/google/uuid"
)

// DishCategory groups dishes on a holiday menu.
type DishCategory string

const (
	DishMain      DishCategory = "main"
	DishSide      DishCategory = "side"
	DishAppetizer DishCategory = "appetizer"
	DishDessert   DishCategory = "dessert"
	DishDrink     DishCategory = "drink"
)

// HolidayEvent is a dated meal with a serving deadline, e.g. Thanksgiving dinner.
type HolidayEvent struct {
	Base
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	EventDate   time.Time `gorm:"not null" json:"event_date"`
	ServingTime string    `gorm:"size:5;not null" json:"serving_time"`
	Dishes      []Dish    `gorm:"foreignKey:EventID" json:"dishes,omitempty"`
}

type Dish struct {
	Base
	EventID           uuid.UUID    `gorm:"type:uuid;not null;index" json:"event_id"`
	Name              string       `gorm:"size:255;not null" json:"name"`
	Category          DishCategory `gorm:"size:20" json:"category"`
	PrepTimeMinutes   int          `json:"prep_time_minutes"`
	CookTimeMinutes   int          `json:"cook_time_minutes"`
	CanMakeAhead      bool         `json:"can_make_ahead"`
	MakeAheadLeadDays int          `json:"make_ahead_lead_days"`
}
