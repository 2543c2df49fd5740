package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/model"
	"github.com/pageza/harvestplan/backend/internal/types"
	"gorm.io/gorm"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe creates a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.RecipeRequest) (*model.Recipe, error) {
	recipe := model.Recipe{UserID: userID}
	if err := applyRecipeRequest(&recipe, req); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return &recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return &recipe, nil
}

// UpdateRecipe replaces a recipe's editable fields
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req *types.RecipeRequest) (*model.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := applyRecipeRequest(recipe, req); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return recipe, nil
}

// DeleteRecipe deletes a recipe
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Recipe{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRecipes lists a household's recipes, optionally for one meal type
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, mealType string) ([]model.Recipe, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if mealType != "" {
		mt, err := model.ParseMealType(mealType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
		}
		query = query.Where("meal_type = ?", mt)
	}

	var recipes []model.Recipe
	if err := query.Order("name").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

func applyRecipeRequest(recipe *model.Recipe, req *types.RecipeRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrInvalidInput)
	}
	mealType := model.MealDinner
	if req.MealType != "" {
		mt, err := model.ParseMealType(req.MealType)
		if err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
		}
		mealType = mt
	}
	if req.CookTimeMinutes != nil && *req.CookTimeMinutes < 0 {
		return fmt.Errorf("%w: cook time must not be negative", apperr.ErrInvalidInput)
	}

	lines := make(model.JSONBStringArray, 0, len(req.IngredientLines))
	for _, l := range req.IngredientLines {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	recipe.Name = name
	recipe.Cuisine = strings.TrimSpace(req.Cuisine)
	recipe.IngredientLines = lines
	recipe.CookTimeMinutes = req.CookTimeMinutes
	recipe.MealType = mealType
	return nil
}
