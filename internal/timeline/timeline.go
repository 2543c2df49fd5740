// Package timeline turns a holiday menu into a make-ahead list and a
// backwards-scheduled cooking plan for the day of the event.
package timeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/model"
)

const clockLayout = "15:04"

type MakeAheadEntry struct {
	DishID   uuid.UUID `json:"dish_id"`
	Name     string    `json:"name"`
	DoByDate time.Time `json:"do_by_date"`
	LeadDays int       `json:"lead_days"`
	When     string    `json:"when"`
}

type DayOfEntry struct {
	DishID          uuid.UUID `json:"dish_id"`
	Name            string    `json:"name"`
	StartTime       string    `json:"start_time"`
	CookStartTime   string    `json:"cook_start_time"`
	EndTime         string    `json:"end_time"`
	StartAt         time.Time `json:"start_at"`
	DurationMinutes int       `json:"duration_minutes"`
}

type Timeline struct {
	ServingTime string           `json:"serving_time"`
	ServingAt   time.Time        `json:"serving_at"`
	MakeAhead   []MakeAheadEntry `json:"make_ahead"`
	DayOf       []DayOfEntry     `json:"day_of"`
}

// ParseServingTime validates a 24h "HH:MM" clock time and returns its hour
// and minute.
func ParseServingTime(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(clockLayout, s)
	if err != nil || len(s) != len(clockLayout) {
		return 0, 0, fmt.Errorf("%w: serving time %q must be HH:MM", apperr.ErrInvalidInput, s)
	}
	return t.Hour(), t.Minute(), nil
}

// Build schedules every dish relative to the event's serving time. Dishes
// that can be made ahead land on the make-ahead list; the rest are started
// early enough to finish exactly at serving time.
func Build(dishes []model.Dish, eventDate time.Time, servingTime string) (Timeline, error) {
	hour, minute, err := ParseServingTime(servingTime)
	if err != nil {
		return Timeline{}, err
	}
	// Wall-clock fields, so serving time holds across a DST change that day.
	y, m, d := eventDate.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, eventDate.Location())
	serving := time.Date(y, m, d, hour, minute, 0, 0, eventDate.Location())

	tl := Timeline{
		ServingTime: strings.TrimSpace(servingTime),
		ServingAt:   serving,
		MakeAhead:   []MakeAheadEntry{},
		DayOf:       []DayOfEntry{},
	}

	for _, dish := range dishes {
		if dish.CanMakeAhead {
			lead := max(dish.MakeAheadLeadDays, 0)
			tl.MakeAhead = append(tl.MakeAhead, MakeAheadEntry{
				DishID:   dish.ID,
				Name:     dish.Name,
				DoByDate: day.AddDate(0, 0, -lead),
				LeadDays: lead,
				When:     LeadHint(lead),
			})
			continue
		}

		prep := max(dish.PrepTimeMinutes, 0)
		total := prep + max(dish.CookTimeMinutes, 0)
		start := serving.Add(-time.Duration(total) * time.Minute)
		tl.DayOf = append(tl.DayOf, DayOfEntry{
			DishID:          dish.ID,
			Name:            dish.Name,
			StartTime:       start.Format(clockLayout),
			CookStartTime:   start.Add(time.Duration(prep) * time.Minute).Format(clockLayout),
			EndTime:         serving.Format(clockLayout),
			StartAt:         start,
			DurationMinutes: total,
		})
	}

	sort.SliceStable(tl.MakeAhead, func(i, j int) bool {
		a, b := tl.MakeAhead[i], tl.MakeAhead[j]
		if !a.DoByDate.Equal(b.DoByDate) {
			return a.DoByDate.Before(b.DoByDate)
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	sort.SliceStable(tl.DayOf, func(i, j int) bool {
		a, b := tl.DayOf[i], tl.DayOf[j]
		if a.DurationMinutes != b.DurationMinutes {
			return a.DurationMinutes > b.DurationMinutes
		}
		if !strings.EqualFold(a.Name, b.Name) {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
		return a.DishID.String() < b.DishID.String()
	})
	return tl, nil
}

// LeadHint describes how far ahead of the event a dish should be made.
func LeadHint(days int) string {
	switch {
	case days <= 0:
		return "earlier on the day"
	case days == 1:
		return "the day before"
	case days%7 == 0 && days/7 == 1:
		return "1 week before"
	case days%7 == 0:
		return fmt.Sprintf("%d weeks before", days/7)
	default:
		return fmt.Sprintf("%d days before", days)
	}
}
