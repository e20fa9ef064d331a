package hr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ndisproject/hrm-backend/internal/models"
)

// ConvertResult carries the outcome of a convert-to-worker transition. Notice
// is a one-shot message for the caller to display; TempPassword is set only
// when provisioning created a new user.
type ConvertResult struct {
	Candidate    *models.Candidate
	User         *models.User
	TempPassword string
	Notice       string
}

// ConvertToWorker moves a candidate into the Workers bucket, provisioning a
// linked user first if needed. The status change and user link are committed
// in one transaction. Re-invoking on an already converted candidate is a
// no-op status-wise and never regenerates credentials.
func ConvertToWorker(db *gorm.DB, candidateID uint) (*ConvertResult, error) {
	var cand models.Candidate
	if err := db.First(&cand, candidateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(CodeNotFound, "candidate not found", err)
		}
		return nil, NewError(CodeInternal, "failed to load candidate", err)
	}

	result := &ConvertResult{Candidate: &cand}
	err := db.Transaction(func(tx *gorm.DB) error {
		user, tempPassword, err := EnsureCandidateUser(tx, &cand)
		if err != nil {
			return err
		}
		result.User = user
		result.TempPassword = tempPassword

		cand.Status = models.StatusHired
		cand.UserID = &user.ID
		return tx.Model(&cand).Updates(map[string]any{
			"status":  models.StatusHired,
			"user_id": user.ID,
		}).Error
	})
	if err != nil {
		var herr *Error
		if errors.As(err, &herr) {
			return nil, herr
		}
		return nil, NewError(CodeInternal, "failed to convert candidate", err)
	}

	if result.TempPassword != "" {
		result.Notice = fmt.Sprintf("Created user '%s'. Temporary password: %s", result.User.Username, result.TempPassword)
	} else {
		result.Notice = fmt.Sprintf("%s moved to Workers.", cand.FullName())
	}
	return result, nil
}
