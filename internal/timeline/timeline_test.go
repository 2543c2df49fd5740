package timeline

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var thanksgiving = time.Date(2024, time.November, 28, 0, 0, 0, 0, time.UTC)

func dish(name string, prep, cook int) model.Dish {
	d := model.Dish{Name: name, PrepTimeMinutes: prep, CookTimeMinutes: cook}
	d.ID = uuid.New()
	return d
}

func aheadDish(name string, lead int) model.Dish {
	d := dish(name, 20, 40)
	d.CanMakeAhead = true
	d.MakeAheadLeadDays = lead
	return d
}

func TestBuild_TurkeyBackScheduled(t *testing.T) {
	tl, err := Build([]model.Dish{dish("Turkey", 30, 180)}, thanksgiving, "17:00")
	require.NoError(t, err)

	require.Len(t, tl.DayOf, 1)
	entry := tl.DayOf[0]
	assert.Equal(t, "Turkey", entry.Name)
	assert.Equal(t, "13:30", entry.StartTime)
	assert.Equal(t, "14:00", entry.CookStartTime)
	assert.Equal(t, "17:00", entry.EndTime)
	assert.Equal(t, 210, entry.DurationMinutes)
	assert.Equal(t, time.Date(2024, time.November, 28, 13, 30, 0, 0, time.UTC), entry.StartAt)
	assert.Empty(t, tl.MakeAhead)
	assert.Equal(t, "17:00", tl.ServingTime)
}

func TestBuild_PartitionsAndOrders(t *testing.T) {
	dishes := []model.Dish{
		dish("Green Beans", 10, 20),
		aheadDish("Cranberry Sauce", 2),
		dish("Turkey", 30, 180),
		aheadDish("Pie", 1),
		aheadDish("Stock", 7),
		dish("Mashed Potatoes", 20, 30),
	}
	tl, err := Build(dishes, thanksgiving, "17:00")
	require.NoError(t, err)

	require.Len(t, tl.DayOf, 3)
	assert.Equal(t, "Turkey", tl.DayOf[0].Name)
	assert.Equal(t, "Mashed Potatoes", tl.DayOf[1].Name)
	assert.Equal(t, "16:10", tl.DayOf[1].StartTime)
	assert.Equal(t, "Green Beans", tl.DayOf[2].Name)
	assert.Equal(t, "16:30", tl.DayOf[2].StartTime)
	for _, e := range tl.DayOf {
		assert.Equal(t, "17:00", e.EndTime)
	}

	require.Len(t, tl.MakeAhead, 3)
	assert.Equal(t, "Stock", tl.MakeAhead[0].Name)
	assert.Equal(t, "1 week before", tl.MakeAhead[0].When)
	assert.Equal(t, thanksgiving.AddDate(0, 0, -7), tl.MakeAhead[0].DoByDate)
	assert.Equal(t, "Cranberry Sauce", tl.MakeAhead[1].Name)
	assert.Equal(t, "2 days before", tl.MakeAhead[1].When)
	assert.Equal(t, "Pie", tl.MakeAhead[2].Name)
	assert.Equal(t, "the day before", tl.MakeAhead[2].When)
}

func TestBuild_ZeroAndNegativeDurations(t *testing.T) {
	tl, err := Build([]model.Dish{dish("Rolls", 0, 0), dish("Salad", -5, 10)}, thanksgiving, "12:00")
	require.NoError(t, err)

	require.Len(t, tl.DayOf, 2)
	assert.Equal(t, "Salad", tl.DayOf[0].Name)
	assert.Equal(t, "11:50", tl.DayOf[0].StartTime)
	assert.Equal(t, "11:50", tl.DayOf[0].CookStartTime)
	assert.Equal(t, "Rolls", tl.DayOf[1].Name)
	assert.Equal(t, "12:00", tl.DayOf[1].StartTime)
	assert.Equal(t, "12:00", tl.DayOf[1].EndTime)
}

func TestBuild_StartCanFallOnPreviousDay(t *testing.T) {
	tl, err := Build([]model.Dish{dish("Brisket", 60, 600)}, thanksgiving, "08:00")
	require.NoError(t, err)
	assert.Equal(t, "21:00", tl.DayOf[0].StartTime)
	assert.Equal(t, 27, tl.DayOf[0].StartAt.Day())
}

func TestBuild_ServingTimeHoldsAcrossDSTChange(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	easter := time.Date(2016, time.March, 27, 0, 0, 0, 0, berlin)

	tl, err := Build([]model.Dish{dish("Lamb", 30, 90)}, easter, "17:00")
	require.NoError(t, err)
	assert.Equal(t, 17, tl.ServingAt.Hour())
	require.Len(t, tl.DayOf, 1)
	assert.Equal(t, "17:00", tl.DayOf[0].EndTime)
	assert.Equal(t, "15:00", tl.DayOf[0].StartTime)
	assert.Equal(t, "15:30", tl.DayOf[0].CookStartTime)

	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	fallBack := time.Date(2024, time.November, 3, 0, 0, 0, 0, newYork)

	tl, err = Build([]model.Dish{dish("Brisket", 0, 600)}, fallBack, "17:00")
	require.NoError(t, err)
	assert.Equal(t, "17:00", tl.DayOf[0].EndTime)
	assert.Equal(t, "07:00", tl.DayOf[0].StartTime)
}

func TestParseServingTime(t *testing.T) {
	hour, minute, err := ParseServingTime(" 06:45 ")
	require.NoError(t, err)
	assert.Equal(t, 6, hour)
	assert.Equal(t, 45, minute)

	_, _, err = ParseServingTime("6:45")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestBuild_NegativeLeadClamped(t *testing.T) {
	tl, err := Build([]model.Dish{aheadDish("Dip", -3)}, thanksgiving, "17:00")
	require.NoError(t, err)
	require.Len(t, tl.MakeAhead, 1)
	assert.Equal(t, thanksgiving, tl.MakeAhead[0].DoByDate)
	assert.Equal(t, 0, tl.MakeAhead[0].LeadDays)
	assert.Equal(t, "earlier on the day", tl.MakeAhead[0].When)
}

func TestBuild_NoDishes(t *testing.T) {
	tl, err := Build(nil, thanksgiving, "17:00")
	require.NoError(t, err)
	assert.NotNil(t, tl.MakeAhead)
	assert.NotNil(t, tl.DayOf)
	assert.Empty(t, tl.MakeAhead)
	assert.Empty(t, tl.DayOf)
}

func TestBuild_InvalidServingTime(t *testing.T) {
	for _, s := range []string{"", "5pm", "25:00", "17:60", "7:00", "17:00:00"} {
		_, err := Build(nil, thanksgiving, s)
		assert.ErrorIs(t, err, apperr.ErrInvalidInput, "serving time %q", s)
	}
}

func TestLeadHint(t *testing.T) {
	cases := map[int]string{
		0:  "earlier on the day",
		1:  "the day before",
		3:  "3 days before",
		7:  "1 week before",
		14: "2 weeks before",
		10: "10 days before",
	}
	for days, want := range cases {
		assert.Equal(t, want, LeadHint(days), "lead %d", days)
	}
}
