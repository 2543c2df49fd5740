package types

import (
	"github.com/pageza/harvestplan/backend/internal/model"
)

// Auth API types
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// InventoryItemRequest creates one inventory item. AcquiredDate is YYYY-MM-DD
// and defaults to today. A missing shelf life uses the service default.
type InventoryItemRequest struct {
	Name                   string   `json:"name" binding:"required"`
	Quantity               *float64 `json:"quantity"`
	Unit                   string   `json:"unit"`
	AcquiredDate           string   `json:"acquired_date"`
	EstimatedShelfLifeDays *int     `json:"estimated_shelf_life_days"`
}

type UpdateInventoryItemRequest struct {
	Name                   *string  `json:"name"`
	Quantity               *float64 `json:"quantity"`
	Unit                   *string  `json:"unit"`
	EstimatedShelfLifeDays *int     `json:"estimated_shelf_life_days"`
}

// BulkInventoryRequest carries either pasted text, one item per line, or
// records produced by the ingredient extractor. Both may be present.
type BulkInventoryRequest struct {
	Text         string                 `json:"text"`
	Items        []InventoryItemRequest `json:"items"`
	AcquiredDate string                 `json:"acquired_date"`
}

type BulkRejection struct {
	Line  int    `json:"line"`
	Input string `json:"input"`
	Error string `json:"error"`
}

type BulkInventoryResponse struct {
	Created  []model.InventoryItem `json:"created"`
	Rejected []BulkRejection       `json:"rejected"`
}

// Recipe API types
type RecipeRequest struct {
	Name            string   `json:"name" binding:"required"`
	Cuisine         string   `json:"cuisine"`
	IngredientLines []string `json:"ingredient_lines"`
	CookTimeMinutes *int     `json:"cook_time_minutes"`
	MealType        string   `json:"meal_type"`
}

// WeekPlanRequest asks for a plan starting on StartDate (YYYY-MM-DD).
type WeekPlanRequest struct {
	StartDate       string   `json:"start_date" binding:"required"`
	Days            int      `json:"days"`
	MealTypes       []string `json:"meal_types"`
	Cuisines        []string `json:"cuisines"`
	Disliked        []string `json:"disliked"`
	BalanceCuisines bool     `json:"balance_cuisines"`
	UseInventory    bool     `json:"use_inventory"`
	Seed            *int64   `json:"seed"`
}

type SchoolMenuEntryRequest struct {
	Date     string `json:"date" binding:"required"`
	MealType string `json:"meal_type"`
	ItemName string `json:"item_name" binding:"required"`
}

type SchoolMenuRequest struct {
	Entries []SchoolMenuEntryRequest `json:"entries" binding:"required,dive"`
}

// Holiday event API types
type DishRequest struct {
	Name              string `json:"name" binding:"required"`
	Category          string `json:"category"`
	PrepTimeMinutes   int    `json:"prep_time_minutes"`
	CookTimeMinutes   int    `json:"cook_time_minutes"`
	CanMakeAhead      bool   `json:"can_make_ahead"`
	MakeAheadLeadDays int    `json:"make_ahead_lead_days"`
}

type EventRequest struct {
	Name        string        `json:"name" binding:"required"`
	EventDate   string        `json:"event_date" binding:"required"`
	ServingTime string        `json:"serving_time" binding:"required"`
	Dishes      []DishRequest `json:"dishes" binding:"dive"`
}
