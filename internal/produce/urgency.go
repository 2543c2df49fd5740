package produce

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/harvestplan/backend/internal/model"
)

// UrgencyTier buckets how soon an item should be used.
type UrgencyTier string

const (
	TierOK       UrgencyTier = "ok"
	TierWarning  UrgencyTier = "warning"
	TierCritical UrgencyTier = "critical"
)

const (
	criticalMaxDays = 2
	warningMaxDays  = 5
)

// Urgency is the expiry picture of one inventory item at a given instant.
type Urgency struct {
	ItemID        uuid.UUID   `json:"item_id"`
	Name          string      `json:"name"`
	DaysRemaining int         `json:"days_remaining"`
	Tier          UrgencyTier `json:"tier"`
	ExpiresOn     time.Time   `json:"expires_on"`
}

// Expiring reports whether the tier counts toward urgency scoring.
func (t UrgencyTier) Expiring() bool {
	return t == TierCritical || t == TierWarning
}

// DaysRemaining returns the whole days between now and acquired+shelfLifeDays.
// Both instants are reduced to their calendar day in now's location, so the
// result only changes at midnight. The result is negative once expired.
func DaysRemaining(acquired time.Time, shelfLifeDays int, now time.Time) (int, error) {
	if shelfLifeDays < 0 {
		return 0, fmt.Errorf("%w: shelf life %d days is negative", ErrInvalidInput, shelfLifeDays)
	}
	if acquired.IsZero() {
		return 0, fmt.Errorf("%w: acquired date is missing", ErrInvalidInput)
	}
	expires := startOfDay(acquired.In(now.Location())).AddDate(0, 0, shelfLifeDays)
	return daysBetween(startOfDay(now), expires), nil
}

// ClassifyDays maps remaining days to a tier: critical at 2 or fewer, warning
// from 3 to 5, ok beyond that.
func ClassifyDays(days int) UrgencyTier {
	switch {
	case days <= criticalMaxDays:
		return TierCritical
	case days <= warningMaxDays:
		return TierWarning
	default:
		return TierOK
	}
}

// AssessItem computes the urgency of a single inventory item.
func AssessItem(item model.InventoryItem, now time.Time) (Urgency, error) {
	days, err := DaysRemaining(item.AcquiredDate, item.EstimatedShelfLifeDays, now)
	if err != nil {
		return Urgency{}, fmt.Errorf("item %q: %w", item.Name, err)
	}
	return Urgency{
		ItemID:        item.ID,
		Name:          item.Name,
		DaysRemaining: days,
		Tier:          ClassifyDays(days),
		ExpiresOn:     startOfDay(now).AddDate(0, 0, days),
	}, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b. Both must be midnights in the
// same location; rounding absorbs DST shifts.
func daysBetween(a, b time.Time) int {
	hours := b.Sub(a).Hours()
	if hours >= 0 {
		return int((hours + 12) / 24)
	}
	return -int((-hours + 12) / 24)
}
