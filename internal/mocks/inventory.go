package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/harvestplan/backend/internal/model"
	"github.com/pageza/harvestplan/backend/internal/produce"
	"github.com/pageza/harvestplan/backend/internal/types"
)

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) List(ctx context.Context, userID uuid.UUID, includeUsed bool) ([]model.InventoryItem, error) {
	args := m.Called(ctx, userID, includeUsed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) Create(ctx context.Context, userID uuid.UUID, req *types.InventoryItemRequest) (*model.InventoryItem, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) BulkCreate(ctx context.Context, userID uuid.UUID, req *types.BulkInventoryRequest) (*types.BulkInventoryResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.BulkInventoryResponse), args.Error(1)
}

func (m *MockInventoryService) Update(ctx context.Context, userID, id uuid.UUID, req *types.UpdateInventoryItemRequest) (*model.InventoryItem, error) {
	args := m.Called(ctx, userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) MarkUsed(ctx context.Context, userID, id uuid.UUID) (*model.InventoryItem, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) MarkUnused(ctx context.Context, userID, id uuid.UUID) (*model.InventoryItem, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockInventoryService) Urgency(ctx context.Context, userID uuid.UUID) ([]produce.Urgency, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]produce.Urgency), args.Error(1)
}
