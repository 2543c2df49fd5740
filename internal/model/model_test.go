package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryItem_MarkUsed(t *testing.T) {
	item := InventoryItem{Name: "kale"}
	now := time.Date(2024, time.November, 18, 9, 0, 0, 0, time.UTC)

	item.MarkUsed(now)
	assert.True(t, item.IsUsed)
	require.NotNil(t, item.UsedDate)
	assert.Equal(t, now, *item.UsedDate)

	item.MarkUnused()
	assert.False(t, item.IsUsed)
	assert.Nil(t, item.UsedDate)
}

func TestParseMealType(t *testing.T) {
	mt, err := ParseMealType(" Dinner ")
	require.NoError(t, err)
	assert.Equal(t, MealDinner, mt)

	_, err = ParseMealType("brunch")
	assert.Error(t, err)

	assert.Less(t, MealBreakfast.Order(), MealLunch.Order())
	assert.Less(t, MealLunch.Order(), MealDinner.Order())
	assert.Equal(t, len(MealTypes), MealType("brunch").Order())
}

func TestJSONBStringArray(t *testing.T) {
	v, err := JSONBStringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = JSONBStringArray{"2 cups kale", "salt"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["2 cups kale","salt"]`, v)

	var a JSONBStringArray
	require.NoError(t, a.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, JSONBStringArray{"a", "b"}, a)

	require.NoError(t, a.Scan(nil))
	assert.Empty(t, a)
}

func TestBase_BeforeCreateKeepsExistingID(t *testing.T) {
	id := uuid.New()
	b := Base{ID: id}
	require.NoError(t, b.BeforeCreate(nil))
	assert.Equal(t, id, b.ID)

	var fresh Base
	require.NoError(t, fresh.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, fresh.ID)
}
