package hr

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ndisproject/hrm-backend/internal/models"
	"github.com/ndisproject/hrm-backend/scripts"
)

// openTestDB creates a temporary sqlite database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := scripts.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: email, HashedPassword: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createCandidate(t *testing.T, db *gorm.DB, cand *models.Candidate) *models.Candidate {
	t.Helper()
	if cand.Status == "" {
		cand.Status = models.StatusApplied
	}
	if err := db.Create(cand).Error; err != nil {
		t.Fatalf("failed to create candidate %s: %v", cand.Email, err)
	}
	return cand
}

// createWorker seeds a linked user+candidate pair in a worker status.
func createWorker(t *testing.T, db *gorm.DB, username, email, first, last, jobTitle, status string, appliedOn time.Time) (*models.User, *models.Candidate) {
	t.Helper()
	user := createUser(t, db, username, email)
	cand := createCandidate(t, db, &models.Candidate{
		FirstName: first,
		LastName:  last,
		Email:     email,
		JobTitle:  jobTitle,
		Status:    status,
		AppliedOn: appliedOn,
		UserID:    &user.ID,
	})
	return user, cand
}
