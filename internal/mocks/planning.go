package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/harvestplan/backend/internal/model"
	"github.com/pageza/harvestplan/backend/internal/planner"
	"github.com/pageza/harvestplan/backend/internal/produce"
	"github.com/pageza/harvestplan/backend/internal/timeline"
	"github.com/pageza/harvestplan/backend/internal/types"
)

type MockSuggestionService struct {
	mock.Mock
}

func (m *MockSuggestionService) Suggest(ctx context.Context, userID uuid.UUID, limit int) ([]produce.RankedSuggestion, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]produce.RankedSuggestion), args.Error(1)
}

type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) GenerateWeek(ctx context.Context, userID uuid.UUID, req *types.WeekPlanRequest) (*planner.Plan, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planner.Plan), args.Error(1)
}

type MockSchoolMenuService struct {
	mock.Mock
}

func (m *MockSchoolMenuService) AddEntries(ctx context.Context, userID uuid.UUID, req *types.SchoolMenuRequest) ([]model.SchoolMenuEntry, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SchoolMenuEntry), args.Error(1)
}

func (m *MockSchoolMenuService) ListEntries(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.SchoolMenuEntry, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SchoolMenuEntry), args.Error(1)
}

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) CreateEvent(ctx context.Context, userID uuid.UUID, req *types.EventRequest) (*model.HolidayEvent, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HolidayEvent), args.Error(1)
}

func (m *MockEventService) GetEvent(ctx context.Context, userID, id uuid.UUID) (*model.HolidayEvent, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HolidayEvent), args.Error(1)
}

func (m *MockEventService) ListEvents(ctx context.Context, userID uuid.UUID) ([]model.HolidayEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HolidayEvent), args.Error(1)
}

func (m *MockEventService) DeleteEvent(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockEventService) AddDish(ctx context.Context, userID, eventID uuid.UUID, req *types.DishRequest) (*model.Dish, error) {
	args := m.Called(ctx, userID, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dish), args.Error(1)
}

func (m *MockEventService) Timeline(ctx context.Context, userID, eventID uuid.UUID) (*timeline.Timeline, error) {
	args := m.Called(ctx, userID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timeline.Timeline), args.Error(1)
}
