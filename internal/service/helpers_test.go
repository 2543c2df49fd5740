package service_test

import (
	"testing"
	"time"

	"github.com/pageza/harvestplan/backend/internal/model"
	"github.com/pageza/harvestplan/backend/internal/testhelpers"
	"gorm.io/gorm"
)

var refNow = time.Date(2024, time.November, 18, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return refNow }

func setupDB(t *testing.T) (*gorm.DB, model.User) {
	t.Helper()
	db := testhelpers.SetupSQLiteDB(t)
	return db, testhelpers.CreateUser(t, db, "household@example.com")
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
