package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/model"
	"github.com/pageza/harvestplan/backend/internal/timeline"
	"github.com/pageza/harvestplan/backend/internal/types"
	"gorm.io/gorm"
)

// EventService manages holiday events and schedules their dishes
type EventService struct {
	db  *gorm.DB
	loc *time.Location
}

func NewEventService(db *gorm.DB, loc *time.Location) *EventService {
	if loc == nil {
		loc = time.Local
	}
	return &EventService{db: db, loc: loc}
}

func (s *EventService) CreateEvent(ctx context.Context, userID uuid.UUID, req *types.EventRequest) (*model.HolidayEvent, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrInvalidInput)
	}
	date, err := parseDate("event_date", req.EventDate, s.loc)
	if err != nil {
		return nil, err
	}
	if _, _, err := timeline.ParseServingTime(req.ServingTime); err != nil {
		return nil, err
	}

	event := model.HolidayEvent{
		UserID:      userID,
		Name:        name,
		EventDate:   date,
		ServingTime: strings.TrimSpace(req.ServingTime),
	}
	for i := range req.Dishes {
		dish, err := buildDish(&req.Dishes[i])
		if err != nil {
			return nil, fmt.Errorf("dishes[%d]: %w", i, err)
		}
		event.Dishes = append(event.Dishes, dish)
	}

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

func (s *EventService) GetEvent(ctx context.Context, userID, id uuid.UUID) (*model.HolidayEvent, error) {
	var event model.HolidayEvent
	err := s.db.WithContext(ctx).Preload("Dishes").Where("user_id = ?", userID).First(&event, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	return &event, nil
}

func (s *EventService) ListEvents(ctx context.Context, userID uuid.UUID) ([]model.HolidayEvent, error) {
	var events []model.HolidayEvent
	if err := s.db.WithContext(ctx).Preload("Dishes").Where("user_id = ?", userID).Order("event_date").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, userID, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ?", userID).Delete(&model.HolidayEvent{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete event: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("event_id = ?", id).Delete(&model.Dish{}).Error; err != nil {
			return fmt.Errorf("failed to delete dishes: %w", err)
		}
		return nil
	})
}

func (s *EventService) AddDish(ctx context.Context, userID, eventID uuid.UUID, req *types.DishRequest) (*model.Dish, error) {
	if _, err := s.GetEvent(ctx, userID, eventID); err != nil {
		return nil, err
	}
	dish, err := buildDish(req)
	if err != nil {
		return nil, err
	}
	dish.EventID = eventID
	if err := s.db.WithContext(ctx).Create(&dish).Error; err != nil {
		return nil, fmt.Errorf("failed to add dish: %w", err)
	}
	return &dish, nil
}

// Timeline schedules the event's dishes against its serving time.
func (s *EventService) Timeline(ctx context.Context, userID, eventID uuid.UUID) (*timeline.Timeline, error) {
	event, err := s.GetEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	tl, err := timeline.Build(event.Dishes, event.EventDate.In(s.loc), event.ServingTime)
	if err != nil {
		return nil, err
	}
	return &tl, nil
}

func buildDish(req *types.DishRequest) (model.Dish, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Dish{}, fmt.Errorf("%w: dish name is required", apperr.ErrInvalidInput)
	}
	category := model.DishCategory(strings.ToLower(strings.TrimSpace(req.Category)))
	switch category {
	case "", model.DishMain, model.DishSide, model.DishAppetizer, model.DishDessert, model.DishDrink:
	default:
		return model.Dish{}, fmt.Errorf("%w: unknown dish category %q", apperr.ErrInvalidInput, req.Category)
	}
	return model.Dish{
		Name:              name,
		Category:          category,
		PrepTimeMinutes:   req.PrepTimeMinutes,
		CookTimeMinutes:   req.CookTimeMinutes,
		CanMakeAhead:      req.CanMakeAhead,
		MakeAheadLeadDays: req.MakeAheadLeadDays,
	}, nil
}
