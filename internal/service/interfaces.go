package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/model"
	"github.com/pageza/harvestplan/backend/internal/planner"
	"github.com/pageza/harvestplan/backend/internal/produce"
	"github.com/pageza/harvestplan/backend/internal/timeline"
	"github.com/pageza/harvestplan/backend/internal/types"
)

var (
	ErrNotFound           = apperr.ErrNotFound
	ErrInvalidCredentials = apperr.ErrInvalidCredentials
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", apperr.ErrConflict)
)

const dateLayout = "2006-01-02"

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}

// IInventoryService defines the household inventory operations
type IInventoryService interface {
	List(ctx context.Context, userID uuid.UUID, includeUsed bool) ([]model.InventoryItem, error)
	Create(ctx context.Context, userID uuid.UUID, req *types.InventoryItemRequest) (*model.InventoryItem, error)
	BulkCreate(ctx context.Context, userID uuid.UUID, req *types.BulkInventoryRequest) (*types.BulkInventoryResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req *types.UpdateInventoryItemRequest) (*model.InventoryItem, error)
	MarkUsed(ctx context.Context, userID, id uuid.UUID) (*model.InventoryItem, error)
	MarkUnused(ctx context.Context, userID, id uuid.UUID) (*model.InventoryItem, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Urgency(ctx context.Context, userID uuid.UUID) ([]produce.Urgency, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.RecipeRequest) (*model.Recipe, error)
	GetRecipe(ctx context.Context, userID, id uuid.UUID) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req *types.RecipeRequest) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error
	ListRecipes(ctx context.Context, userID uuid.UUID, mealType string) ([]model.Recipe, error)
}

// ISuggestionService ranks stored recipes against the current inventory
type ISuggestionService interface {
	Suggest(ctx context.Context, userID uuid.UUID, limit int) ([]produce.RankedSuggestion, error)
}

// IPlanService generates week plans
type IPlanService interface {
	GenerateWeek(ctx context.Context, userID uuid.UUID, req *types.WeekPlanRequest) (*planner.Plan, error)
}

// ISchoolMenuService stores what children eat at school
type ISchoolMenuService interface {
	AddEntries(ctx context.Context, userID uuid.UUID, req *types.SchoolMenuRequest) ([]model.SchoolMenuEntry, error)
	ListEntries(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.SchoolMenuEntry, error)
}

// IEventService manages holiday events and their timelines
type IEventService interface {
	CreateEvent(ctx context.Context, userID uuid.UUID, req *types.EventRequest) (*model.HolidayEvent, error)
	GetEvent(ctx context.Context, userID, id uuid.UUID) (*model.HolidayEvent, error)
	ListEvents(ctx context.Context, userID uuid.UUID) ([]model.HolidayEvent, error)
	DeleteEvent(ctx context.Context, userID, id uuid.UUID) error
	AddDish(ctx context.Context, userID, eventID uuid.UUID, req *types.DishRequest) (*model.Dish, error)
	Timeline(ctx context.Context, userID, eventID uuid.UUID) (*timeline.Timeline, error)
}

// HistoryStore remembers which recipes were recently suggested to a household.
type HistoryStore interface {
	// Recent returns up to n entries, oldest first.
	Recent(ctx context.Context, userID uuid.UUID, n int) ([]produce.HistoryEntry, error)
	// Record appends entries in order.
	Record(ctx context.Context, userID uuid.UUID, entries ...produce.HistoryEntry) error
}

func parseDate(field, value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD, got %q", apperr.ErrInvalidInput, field, value)
	}
	return t, nil
}
