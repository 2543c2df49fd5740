package database

import (
	"fmt"
	"log"

	"github.com/pageza/harvestplan/backend/internal/model"
	"gorm.io/gorm"
)

// Models lists every table owned by the application, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.InventoryItem{},
		&model.Recipe{},
		&model.HolidayEvent{},
		&model.Dish{},
		&model.SchoolMenuEntry{},
	}
}

// RunMigrations brings the schema up to date with the models.
func RunMigrations(db *gorm.DB) error {
	log.Printf("Running GORM auto-migration for %s", db.Dialector.Name())
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// DropAll removes every application table, dependents first.
func DropAll(db *gorm.DB) error {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("failed to drop %T: %w", models[i], err)
		}
	}
	return nil
}
