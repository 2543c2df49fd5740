package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/service"
	"github.com/pageza/harvestplan/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func thanksgivingRequest() *types.EventRequest {
	return &types.EventRequest{
		Name:        "Thanksgiving",
		EventDate:   "2024-11-28",
		ServingTime: "17:00",
		Dishes: []types.DishRequest{
			{Name: "Turkey", Category: "main", PrepTimeMinutes: 30, CookTimeMinutes: 180},
			{Name: "Pie", Category: "dessert", CanMakeAhead: true, MakeAheadLeadDays: 1},
		},
	}
}

func TestEventService_CreateAndTimeline(t *testing.T) {
	db, user := setupDB(t)
	svc := service.NewEventService(db, time.UTC)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, user.ID, thanksgivingRequest())
	require.NoError(t, err)
	require.Len(t, event.Dishes, 2)

	dish, err := svc.AddDish(ctx, user.ID, event.ID, &types.DishRequest{Name: "Rolls", PrepTimeMinutes: 10, CookTimeMinutes: 15})
	require.NoError(t, err)
	assert.Equal(t, event.ID, dish.EventID)

	tl, err := svc.Timeline(ctx, user.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "17:00", tl.ServingTime)

	require.Len(t, tl.DayOf, 2)
	assert.Equal(t, "Turkey", tl.DayOf[0].Name)
	assert.Equal(t, "13:30", tl.DayOf[0].StartTime)
	assert.Equal(t, "17:00", tl.DayOf[0].EndTime)
	assert.Equal(t, "Rolls", tl.DayOf[1].Name)
	assert.Equal(t, "16:35", tl.DayOf[1].StartTime)

	require.Len(t, tl.MakeAhead, 1)
	assert.Equal(t, "Pie", tl.MakeAhead[0].Name)
	assert.Equal(t, "the day before", tl.MakeAhead[0].When)
	assert.Equal(t, time.Date(2024, time.November, 27, 0, 0, 0, 0, time.UTC), tl.MakeAhead[0].DoByDate)
}

func TestEventService_Validation(t *testing.T) {
	db, user := setupDB(t)
	svc := service.NewEventService(db, time.UTC)
	ctx := context.Background()

	bad := thanksgivingRequest()
	bad.ServingTime = "5pm"
	_, err := svc.CreateEvent(ctx, user.ID, bad)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	bad = thanksgivingRequest()
	bad.EventDate = "Nov 28"
	_, err = svc.CreateEvent(ctx, user.ID, bad)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	bad = thanksgivingRequest()
	bad.Dishes[0].Category = "entree"
	_, err = svc.CreateEvent(ctx, user.ID, bad)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestEventService_ListAndDelete(t *testing.T) {
	db, user := setupDB(t)
	svc := service.NewEventService(db, time.UTC)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, user.ID, thanksgivingRequest())
	require.NoError(t, err)

	events, err := svc.ListEvents(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Len(t, events[0].Dishes, 2)

	_, err = svc.GetEvent(ctx, uuid.New(), event.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.AddDish(ctx, uuid.New(), event.ID, &types.DishRequest{Name: "Gravy"})
	assert.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, svc.DeleteEvent(ctx, user.ID, event.ID))
	_, err = svc.Timeline(ctx, user.ID, event.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteEvent(ctx, user.ID, event.ID), service.ErrNotFound)
}
