package db

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"libraryapi/internal/model"
)

// Migrate creates or updates the schema for every model. It is idempotent.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every model table, children first. Missing tables are skipped.
func Reset(db *gorm.DB) error {
	tables := model.All()
	for i := len(tables) - 1; i >= 0; i-- {
		if !db.Migrator().HasTable(tables[i]) {
			continue
		}
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	log.Println("Tables dropped")
	return nil
}
