package hr

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ndisproject/hrm-backend/internal/models"
)

const (
	KindResume = "resume"
	KindPhoto  = "photo"
)

// NormalizeKind maps upload kinds to their canonical names ("picture" is an
// accepted alias for "photo") and rejects anything else.
func NormalizeKind(kind string) (string, error) {
	if kind == "picture" {
		kind = KindPhoto
	}
	if kind != KindResume && kind != KindPhoto {
		return "", NewError(CodeValidation, "kind must be 'resume' or 'photo'", nil)
	}
	return kind, nil
}

// CandidateByUser finds the candidate owned by a user, or nil when none exists.
func CandidateByUser(db *gorm.DB, userID uint) (*models.Candidate, error) {
	var cand models.Candidate
	err := db.Where("user_id = ?", userID).First(&cand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, NewError(CodeInternal, "failed to load candidate", err)
	}
	return &cand, nil
}

// GetProfile returns the candidate's profile, or nil when none exists yet.
func GetProfile(db *gorm.DB, candidateID uint) (*models.CandidateProfile, error) {
	var prof models.CandidateProfile
	err := db.Where("candidate_id = ?", candidateID).First(&prof).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, NewError(CodeInternal, "failed to load profile", err)
	}
	return &prof, nil
}

// GetOrCreateProfile lazily creates the profile row on first access.
func GetOrCreateProfile(db *gorm.DB, candidateID uint) (*models.CandidateProfile, error) {
	prof, err := GetProfile(db, candidateID)
	if err != nil {
		return nil, err
	}
	if prof != nil {
		return prof, nil
	}
	prof = &models.CandidateProfile{CandidateID: candidateID}
	if err := db.Create(prof).Error; err != nil {
		return nil, NewError(CodeInternal, "failed to create profile", err)
	}
	return prof, nil
}

// ProfileChangeset enumerates the profile fields a partial update may touch.
// Nil fields are left untouched.
type ProfileChangeset struct {
	Summary  *string `json:"summary"`
	Skills   *string `json:"skills"`
	Linkedin *string `json:"linkedin"`
	Address  *string `json:"address"`
}

func (cs ProfileChangeset) apply(prof *models.CandidateProfile) {
	if cs.Summary != nil {
		prof.Summary = *cs.Summary
	}
	if cs.Skills != nil {
		prof.Skills = *cs.Skills
	}
	if cs.Linkedin != nil {
		prof.Linkedin = *cs.Linkedin
	}
	if cs.Address != nil {
		prof.Address = *cs.Address
	}
}

// UpdateProfile merges a sparse changeset into the candidate's profile,
// creating it first if needed.
func UpdateProfile(db *gorm.DB, candidateID uint, cs ProfileChangeset) (*models.CandidateProfile, error) {
	prof, err := GetOrCreateProfile(db, candidateID)
	if err != nil {
		return nil, err
	}
	cs.apply(prof)
	if err := db.Save(prof).Error; err != nil {
		return nil, NewError(CodeInternal, "failed to update profile", err)
	}
	return prof, nil
}

// SetProfileFile records the stored path for the given upload kind.
func SetProfileFile(db *gorm.DB, candidateID uint, kind, path string) (*models.CandidateProfile, error) {
	kind, err := NormalizeKind(kind)
	if err != nil {
		return nil, err
	}
	prof, err := GetOrCreateProfile(db, candidateID)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindResume:
		prof.ResumePath = path
	case KindPhoto:
		prof.PhotoPath = path
	}
	if err := db.Save(prof).Error; err != nil {
		return nil, NewError(CodeInternal, "failed to record profile file", err)
	}
	return prof, nil
}

// SetResumeText stores extracted resume text on the profile.
func SetResumeText(db *gorm.DB, candidateID uint, text string) error {
	prof, err := GetOrCreateProfile(db, candidateID)
	if err != nil {
		return err
	}
	prof.ResumeText = text
	if err := db.Save(prof).Error; err != nil {
		return NewError(CodeInternal, "failed to store resume text", err)
	}
	return nil
}
