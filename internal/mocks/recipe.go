package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/harvestplan/backend/internal/model"
	"github.com/pageza/harvestplan/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.RecipeRequest) (*model.Recipe, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*model.Recipe, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req *types.RecipeRequest) (*model.Recipe, error) {
	args := m.Called(ctx, userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, mealType string) ([]model.Recipe, error) {
	args := m.Called(ctx, userID, mealType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}
