package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is a perishable item on hand, entered manually, by bulk paste,
// or imported from the ingredient extractor.
type InventoryItem struct {
	Base
	UserID                 uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name                   string     `gorm:"size:255;not null" json:"name"`
	Quantity               *float64   `json:"quantity,omitempty"`
	Unit                   string     `gorm:"size:50" json:"unit,omitempty"`
	AcquiredDate           time.Time  `gorm:"not null" json:"acquired_date"`
	EstimatedShelfLifeDays int        `gorm:"not null" json:"estimated_shelf_life_days"`
	IsUsed                 bool       `gorm:"not null;default:false" json:"is_used"`
	UsedDate               *time.Time `json:"used_date,omitempty"`
}

// MarkUsed flags the item as consumed. UsedDate is always set alongside IsUsed.
func (i *InventoryItem) MarkUsed(now time.Time) {
	i.IsUsed = true
	i.UsedDate = &now
}

// MarkUnused reverts MarkUsed.
func (i *InventoryItem) MarkUnused() {
	i.IsUsed = false
	i.UsedDate = nil
}
