package models

import (
	"strings"
	"time"
)

// Candidate status lifecycle. A candidate starts as "Applied" and is moved
// into the worker bucket by the convert action, which always lands on "Hired".
const (
	StatusApplied = "Applied"
	StatusHired   = "Hired"
)

// WorkerStatuses is the set of candidate statuses that count as "worker".
// Candidates outside this set are applicants.
var WorkerStatuses = []string{"Hired", "Employee", "Active"}

// IsWorkerStatus reports whether status places a candidate in the Workers bucket.
func IsWorkerStatus(status string) bool {
	for _, s := range WorkerStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"not null" json:"-"`
	CreatedAt      time.Time `json:"created_at"`

	Candidates []Candidate `gorm:"foreignKey:UserID" json:"-"`
}

type Candidate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`
	Mobile    string    `json:"mobile"`
	JobTitle  string    `json:"job_title"`
	Address   string    `json:"address"`
	Status    string    `gorm:"type:varchar(32);default:Applied" json:"status"`
	AppliedOn time.Time `gorm:"autoCreateTime" json:"applied_on"`
	UserID    *uint     `gorm:"index" json:"user_id"`

	User    *User             `gorm:"foreignKey:UserID" json:"-"`
	Profile *CandidateProfile `gorm:"foreignKey:CandidateID" json:"-"`
}

// FullName joins the candidate name parts, falling back to "Candidate" when both are empty.
func (c *Candidate) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if name == "" {
		return "Candidate"
	}
	return name
}

// CandidateProfile is created lazily on first profile edit or upload.
type CandidateProfile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CandidateID uint      `gorm:"uniqueIndex;not null" json:"candidate_id"`
	Summary     string    `json:"summary"`
	Skills      string    `json:"skills"`
	Linkedin    string    `json:"linkedin"`
	Address     string    `json:"address"`
	ResumePath  string    `json:"resume_path"`
	PhotoPath   string    `json:"photo_path"`
	ResumeText  string    `gorm:"type:text" json:"-"`
	UpdatedAt   time.Time `json:"updated_at"`
}
