package db

import (
	"elearning_api/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/gorm" // GORM ORM library
)

// Migrate creates the users, courses, modules and enrollments tables with
// their foreign keys. AutoMigrate is idempotent, so this runs on every
// startup without versioning logic.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Course{},
		&domain.Module{},
		&domain.Enrollment{},
	)
}

// MustMigrate runs Migrate and exits the process on failure
func MustMigrate(db *gorm.DB) {
	if err := Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.Info("Migration completed.")
}
