package hr

import (
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ndisproject/hrm-backend/internal/models"
)

// Filters carries the raw query parameters of the workers listing. Empty
// strings mean "not set"; unparseable dates are ignored.
type Filters struct {
	Role     string `json:"role"`
	Status   string `json:"status"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	Q        string `json:"q"`
}

type WorkerRow struct {
	User      models.User      `json:"user"`
	Candidate models.Candidate `json:"candidate"`
}

type WorkerList struct {
	Rows          []WorkerRow `json:"results"`
	Filters       Filters     `json:"filters"`
	Roles         []string    `json:"roles"`
	StatusOptions []string    `json:"status_options"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseFilterDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// QueryWorkers builds the filtered workers listing: users inner-joined with
// their candidate, restricted by default to worker statuses, ordered by
// case-insensitive username. All supplied filters are ANDed.
func QueryWorkers(db *gorm.DB, f Filters) (*WorkerList, error) {
	f.Role = strings.TrimSpace(f.Role)
	f.Status = strings.TrimSpace(f.Status)
	f.DateFrom = strings.TrimSpace(f.DateFrom)
	f.DateTo = strings.TrimSpace(f.DateTo)
	f.Q = strings.TrimSpace(f.Q)

	tx := db.Model(&models.Candidate{}).
		Joins("INNER JOIN users ON users.id = candidates.user_id")

	if f.Status != "" {
		tx = tx.Where("candidates.status = ?", f.Status)
	} else {
		tx = tx.Where("candidates.status IN ?", models.WorkerStatuses)
	}
	if f.Role != "" {
		tx = tx.Where("candidates.job_title = ?", f.Role)
	}
	if from, ok := parseFilterDate(f.DateFrom); ok {
		tx = tx.Where("candidates.applied_on >= ?", from)
	}
	if to, ok := parseFilterDate(f.DateTo); ok {
		// date_to is inclusive through end of day
		tx = tx.Where("candidates.applied_on < ?", to.AddDate(0, 0, 1))
	}
	if f.Q != "" {
		like := "%" + strings.ToLower(f.Q) + "%"
		tx = tx.Where(
			"LOWER(candidates.first_name) LIKE ? OR LOWER(candidates.last_name) LIKE ? OR LOWER(candidates.email) LIKE ? OR LOWER(candidates.mobile) LIKE ? OR LOWER(users.username) LIKE ? OR LOWER(users.email) LIKE ?",
			like, like, like, like, like, like,
		)
	}

	var candidates []models.Candidate
	if err := tx.Order("LOWER(users.username) ASC").
		Select("candidates.*").
		Find(&candidates).Error; err != nil {
		return nil, NewError(CodeInternal, "failed to query workers", err)
	}

	userIDs := make([]uint, 0, len(candidates))
	for _, cand := range candidates {
		if cand.UserID != nil {
			userIDs = append(userIDs, *cand.UserID)
		}
	}
	usersByID := make(map[uint]models.User, len(userIDs))
	if len(userIDs) > 0 {
		var users []models.User
		if err := db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, NewError(CodeInternal, "failed to load worker users", err)
		}
		for _, u := range users {
			usersByID[u.ID] = u
		}
	}

	rows := make([]WorkerRow, 0, len(candidates))
	for _, cand := range candidates {
		if cand.UserID == nil {
			continue
		}
		user, ok := usersByID[*cand.UserID]
		if !ok {
			continue
		}
		rows = append(rows, WorkerRow{User: user, Candidate: cand})
	}

	roles, err := workerRoles(db)
	if err != nil {
		return nil, err
	}

	return &WorkerList{
		Rows:          rows,
		Filters:       f,
		Roles:         roles,
		StatusOptions: StatusOptions(),
	}, nil
}

// workerRoles lists the distinct non-empty job titles among worker-status
// candidates, sorted case-insensitively, for the role dropdown.
func workerRoles(db *gorm.DB) ([]string, error) {
	var roles []string
	err := db.Model(&models.Candidate{}).
		Where("status IN ?", models.WorkerStatuses).
		Where("job_title IS NOT NULL AND job_title <> ''").
		Distinct().
		Pluck("job_title", &roles).Error
	if err != nil {
		return nil, NewError(CodeInternal, "failed to list worker roles", err)
	}
	sort.Slice(roles, func(i, j int) bool {
		return strings.ToLower(roles[i]) < strings.ToLower(roles[j])
	})
	return roles, nil
}

// StatusOptions returns the sorted worker-status set for the status dropdown.
// It is independent of any applied filters.
func StatusOptions() []string {
	options := make([]string, len(models.WorkerStatuses))
	copy(options, models.WorkerStatuses)
	sort.Strings(options)
	return options
}

// ListApplicants returns candidates whose status is outside the worker set.
func ListApplicants(db *gorm.DB) ([]models.Candidate, error) {
	var applicants []models.Candidate
	err := db.Where("status NOT IN ?", models.WorkerStatuses).Find(&applicants).Error
	if err != nil {
		return nil, NewError(CodeInternal, "failed to list applicants", err)
	}
	return applicants, nil
}
