package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ndisproject/hrm-backend/internal/hr"
	"github.com/ndisproject/hrm-backend/internal/models"
)

// APIMe returns the authenticated user with their candidate and profile.
func (d *Deps) APIMe(c *gin.Context) {
	user, err := d.currentUser(c)
	if err != nil {
		abortError(c, err)
		return
	}
	cand, err := hr.CandidateByUser(d.DB, user.ID)
	if err != nil {
		abortError(c, err)
		return
	}
	var prof *models.CandidateProfile
	if cand != nil {
		prof, err = hr.GetProfile(d.DB, cand.ID)
		if err != nil {
			abortError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"candidate": cand,
		"profile":   prof,
	})
}

func (d *Deps) APIAdminMetrics(c *gin.Context) {
	if _, err := d.currentUser(c); err != nil {
		abortError(c, err)
		return
	}
	var candidatesCount, usersCount, workersCount int64
	if err := d.DB.Model(&models.Candidate{}).Count(&candidatesCount).Error; err != nil {
		abortError(c, hr.NewError(hr.CodeInternal, "failed to count candidates", err))
		return
	}
	if err := d.DB.Model(&models.User{}).Count(&usersCount).Error; err != nil {
		abortError(c, hr.NewError(hr.CodeInternal, "failed to count users", err))
		return
	}
	if err := d.DB.Model(&models.Candidate{}).
		Where("status IN ?", models.WorkerStatuses).
		Count(&workersCount).Error; err != nil {
		abortError(c, hr.NewError(hr.CodeInternal, "failed to count workers", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"candidates_count": candidatesCount,
		"users_count":      usersCount,
		"workers_count":    workersCount,
	})
}

func (d *Deps) APIAdminCandidates(c *gin.Context) {
	if _, err := d.currentUser(c); err != nil {
		abortError(c, err)
		return
	}
	var candidates []models.Candidate
	if err := d.DB.Preload("Profile").Find(&candidates).Error; err != nil {
		abortError(c, hr.NewError(hr.CodeInternal, "failed to list candidates", err))
		return
	}
	results := make([]gin.H, 0, len(candidates))
	for i := range candidates {
		results = append(results, gin.H{
			"candidate": candidates[i],
			"profile":   candidates[i].Profile,
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (d *Deps) APIAdminWorkers(c *gin.Context) {
	if _, err := d.currentUser(c); err != nil {
		abortError(c, err)
		return
	}
	list, err := hr.QueryWorkers(d.DB, workerFiltersFromQuery(c))
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (d *Deps) APIAdminApplicants(c *gin.Context) {
	if _, err := d.currentUser(c); err != nil {
		abortError(c, err)
		return
	}
	applicants, err := hr.ListApplicants(d.DB)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": applicants})
}

type profileUpdatePayload struct {
	hr.ProfileChangeset
	JobTitle *string `json:"job_title"`
}

// APIUpdateProfile applies a sparse JSON changeset to the caller's profile.
func (d *Deps) APIUpdateProfile(c *gin.Context) {
	user, err := d.currentUser(c)
	if err != nil {
		abortError(c, err)
		return
	}
	cand, err := hr.CandidateByUser(d.DB, user.ID)
	if err != nil {
		abortError(c, err)
		return
	}
	if cand == nil {
		abortError(c, hr.NewError(hr.CodeValidation, "No candidate linked to this user", nil))
		return
	}

	var payload profileUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortError(c, hr.NewError(hr.CodeValidation, "invalid payload", err))
		return
	}

	if payload.JobTitle != nil {
		cand.JobTitle = strings.TrimSpace(*payload.JobTitle)
		if err := d.DB.Save(cand).Error; err != nil {
			abortError(c, hr.NewError(hr.CodeInternal, "failed to save candidate", err))
			return
		}
	}
	prof, err := hr.UpdateProfile(d.DB, cand.ID, payload.ProfileChangeset)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidate": cand, "profile": prof})
}

func (d *Deps) APIUploadProfileAsset(c *gin.Context) {
	user, err := d.currentUser(c)
	if err != nil {
		abortError(c, err)
		return
	}
	cand, err := hr.CandidateByUser(d.DB, user.ID)
	if err != nil {
		abortError(c, err)
		return
	}
	if cand == nil {
		abortError(c, hr.NewError(hr.CodeValidation, "No candidate linked to this user", nil))
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		abortError(c, hr.NewError(hr.CodeValidation, "file is required", err))
		return
	}
	kind, rel, err := d.saveProfileUpload(cand, c.PostForm("kind"), fh)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"candidate_id": cand.ID,
		"kind":         kind,
		"path":         rel,
	})
}

type candidateCreatePayload struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required"`
	LastName  string `json:"last_name" form:"last_name" binding:"required"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Mobile    string `json:"mobile" form:"mobile"`
	JobTitle  string `json:"job_title" form:"job_title"`
	Address   string `json:"address" form:"address"`
	AppliedOn string `json:"applied_on" form:"applied_on"`
}

// APICreateCandidate is the self-intake endpoint used by the candidate form.
// It accepts JSON or multipart, the latter with an optional resume file.
func (d *Deps) APICreateCandidate(c *gin.Context) {
	user, err := d.currentUser(c)
	if err != nil {
		abortError(c, err)
		return
	}

	var payload candidateCreatePayload
	multipartForm := strings.HasPrefix(c.ContentType(), "multipart/form-data")
	if multipartForm {
		err = c.ShouldBind(&payload)
	} else {
		err = c.ShouldBindJSON(&payload)
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	cand := models.Candidate{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Mobile:    payload.Mobile,
		JobTitle:  payload.JobTitle,
		Address:   payload.Address,
		Status:    models.StatusApplied,
		UserID:    &user.ID,
	}
	if payload.AppliedOn != "" {
		if t, err := time.Parse("2006-01-02", payload.AppliedOn); err == nil {
			cand.AppliedOn = t
		}
	}

	if err := d.DB.Create(&cand).Error; err != nil {
		if hr.IsDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"detail": "Email already exists for a candidate."})
			return
		}
		abortError(c, hr.NewError(hr.CodeInternal, "failed to create candidate", err))
		return
	}

	response := gin.H{"id": cand.ID, "detail": "created"}
	if multipartForm {
		if fh, err := c.FormFile("resume"); err == nil {
			if _, rel, err := d.saveProfileUpload(&cand, hr.KindResume, fh); err != nil {
				log.WithError(err).Warn("failed to store intake resume")
			} else {
				response["resume_path"] = rel
			}
		}
	}
	c.JSON(http.StatusCreated, response)
}
