package database

import (
	"fmt"

	"gorm.io/gorm"

	"issue-tracker-api/internal/domain"
)

// AutoMigrate runs GORM auto-migration for all domain models.
// The users table belongs to the identity service; migrating it here keeps
// dev and test environments self-contained.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&domain.User{},
		&domain.Issue{},
		&domain.Comment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}
