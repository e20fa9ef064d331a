// scripts/migrate.go
package scripts

import (
	"gorm.io/gorm"

	"github.com/ndisproject/hrm-backend/internal/models"
)

// Migrate brings the schema up to date, adding any missing columns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Candidate{},
		&models.CandidateProfile{},
	)
}
