package hr

import (
	"strings"
	"testing"

	"github.com/ndisproject/hrm-backend/internal/models"
)

func TestConvertToWorkerNotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := ConvertToWorker(db, 999)
	if err == nil {
		t.Fatal("expected an error for an unknown candidate")
	}
	if CodeOf(err) != CodeNotFound {
		t.Errorf("code = %q, want %q", CodeOf(err), CodeNotFound)
	}
}

func TestConvertToWorkerProvisionsAndHires(t *testing.T) {
	db := openTestDB(t)
	cand := createCandidate(t, db, &models.Candidate{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	})

	result, err := ConvertToWorker(db, cand.ID)
	if err != nil {
		t.Fatalf("ConvertToWorker failed: %v", err)
	}
	if result.User == nil {
		t.Fatal("expected a provisioned user")
	}
	if result.TempPassword == "" {
		t.Error("expected a one-time temporary password")
	}
	if !strings.Contains(result.Notice, result.User.Username) ||
		!strings.Contains(result.Notice, result.TempPassword) {
		t.Errorf("notice should surface the new credentials once: %q", result.Notice)
	}

	var stored models.Candidate
	if err := db.First(&stored, cand.ID).Error; err != nil {
		t.Fatalf("failed to reload candidate: %v", err)
	}
	if stored.Status != models.StatusHired {
		t.Errorf("status = %q, want %q", stored.Status, models.StatusHired)
	}
	if stored.UserID == nil || *stored.UserID != result.User.ID {
		t.Error("user link not persisted with the status change")
	}
}

func TestConvertToWorkerIdempotent(t *testing.T) {
	db := openTestDB(t)
	cand := createCandidate(t, db, &models.Candidate{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	})

	first, err := ConvertToWorker(db, cand.ID)
	if err != nil {
		t.Fatalf("first convert failed: %v", err)
	}
	second, err := ConvertToWorker(db, cand.ID)
	if err != nil {
		t.Fatalf("second convert failed: %v", err)
	}

	if second.TempPassword != "" {
		t.Error("second convert must not regenerate credentials")
	}
	if second.User.ID != first.User.ID {
		t.Errorf("second convert linked user %d, want %d", second.User.ID, first.User.ID)
	}
	if second.Notice != "Jane Doe moved to Workers." {
		t.Errorf("notice = %q", second.Notice)
	}

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if userCount != 1 {
		t.Errorf("expected exactly one user after double convert, got %d", userCount)
	}

	var stored models.Candidate
	if err := db.First(&stored, cand.ID).Error; err != nil {
		t.Fatalf("failed to reload candidate: %v", err)
	}
	if stored.Status != models.StatusHired {
		t.Errorf("status = %q, want %q", stored.Status, models.StatusHired)
	}
}

func TestConvertToWorkerReusesExistingUserByEmail(t *testing.T) {
	db := openTestDB(t)
	existing := createUser(t, db, "jane", "jane@example.com")
	cand := createCandidate(t, db, &models.Candidate{Email: "jane@example.com"})

	result, err := ConvertToWorker(db, cand.ID)
	if err != nil {
		t.Fatalf("ConvertToWorker failed: %v", err)
	}
	if result.User.ID != existing.ID {
		t.Errorf("expected reuse of user %d, got %d", existing.ID, result.User.ID)
	}
	if result.TempPassword != "" {
		t.Error("reusing a user must not surface a temporary password")
	}
	if !strings.Contains(result.Notice, "moved to Workers") {
		t.Errorf("notice = %q", result.Notice)
	}
}
