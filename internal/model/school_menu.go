package model

import (
	"time"

	"github.com/google/uuid"
)

// SchoolMenuEntry records an item served at school on a given day. The week
// planner avoids repeating these at home on the same date.
type SchoolMenuEntry struct {
	Base
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Date     time.Time `gorm:"not null;index" json:"date"`
	MealType MealType  `gorm:"size:20" json:"meal_type,omitempty"`
	ItemName string    `gorm:"size:255;not null" json:"item_name"`
}
