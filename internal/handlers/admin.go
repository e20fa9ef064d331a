package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ndisproject/hrm-backend/internal/hr"
	"github.com/ndisproject/hrm-backend/internal/models"
)

func (d *Deps) AdminDashboard(c *gin.Context) {
	var candidatesCount, usersCount int64
	if err := d.DB.Model(&models.Candidate{}).Count(&candidatesCount).Error; err != nil {
		abortError(c, hr.NewError(hr.CodeInternal, "failed to count candidates", err))
		return
	}
	if err := d.DB.Model(&models.User{}).Count(&usersCount).Error; err != nil {
		abortError(c, hr.NewError(hr.CodeInternal, "failed to count users", err))
		return
	}
	d.renderHTML(c, http.StatusOK, "admin_dashboard.html", "Admin Dashboard", gin.H{
		"candidates_count": candidatesCount,
		"users_count":      usersCount,
	})
}

func (d *Deps) AdminCandidates(c *gin.Context) {
	var candidates []models.Candidate
	if err := d.DB.Find(&candidates).Error; err != nil {
		abortError(c, hr.NewError(hr.CodeInternal, "failed to list candidates", err))
		return
	}
	d.renderHTML(c, http.StatusOK, "candidates.html", "Candidates", gin.H{
		"candidates": candidates,
	})
}

func workerFiltersFromQuery(c *gin.Context) hr.Filters {
	return hr.Filters{
		Role:     c.Query("role"),
		Status:   c.Query("status"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Q:        c.Query("q"),
	}
}

func (d *Deps) AdminUsers(c *gin.Context) {
	list, err := hr.QueryWorkers(d.DB, workerFiltersFromQuery(c))
	if err != nil {
		abortError(c, err)
		return
	}
	d.renderHTML(c, http.StatusOK, "users.html", "Workers", gin.H{
		"rows":           list.Rows,
		"roles":          list.Roles,
		"status_options": list.StatusOptions,
		"role":           list.Filters.Role,
		"status":         list.Filters.Status,
		"date_from":      list.Filters.DateFrom,
		"date_to":        list.Filters.DateTo,
		"q":              list.Filters.Q,
		"flash":          takeFlash(c),
	})
}

// AdminStaffsRedirect keeps the previous /admin/staffs route working.
func (d *Deps) AdminStaffsRedirect(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, "/admin/users")
}

func (d *Deps) AdminNewUserForm(c *gin.Context) {
	d.renderHTML(c, http.StatusOK, "user_new.html", "New Employee", gin.H{})
}

// AdminCreateUser creates a User and matching Candidate record from the form.
func (d *Deps) AdminCreateUser(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	if username == "" || email == "" {
		d.renderHTML(c, http.StatusBadRequest, "user_new.html", "New Employee", gin.H{
			"error": "username and email are required",
		})
		return
	}

	var existing models.User
	if d.DB.Where("username = ? OR email = ?", username, email).First(&existing).Error == nil {
		d.renderHTML(c, http.StatusBadRequest, "user_new.html", "New Employee", gin.H{
			"error": "Username or email already exists.",
		})
		return
	}

	tempPassword, err := hr.TempPassword()
	if err != nil {
		abortError(c, hr.NewError(hr.CodeInternal, "failed to generate password", err))
		return
	}
	hashed, err := hr.HashPassword(tempPassword)
	if err != nil {
		abortError(c, hr.NewError(hr.CodeInternal, "failed to hash password", err))
		return
	}

	status := strings.TrimSpace(c.PostForm("status"))
	if status == "" {
		status = models.StatusApplied
	}

	err = d.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{Username: username, Email: email, HashedPassword: hashed}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		cand := models.Candidate{
			FirstName: c.PostForm("first_name"),
			LastName:  c.PostForm("last_name"),
			Email:     email,
			Mobile:    c.PostForm("mobile"),
			JobTitle:  c.PostForm("job_title"),
			Status:    status,
			UserID:    &user.ID,
		}
		return tx.Create(&cand).Error
	})
	if err != nil {
		if hr.IsDuplicate(err) {
			d.renderHTML(c, http.StatusBadRequest, "user_new.html", "New Employee", gin.H{
				"error": "Username or email already exists.",
			})
			return
		}
		abortError(c, hr.NewError(hr.CodeInternal, "failed to create user", err))
		return
	}

	setFlash(c, fmt.Sprintf("User created. Temporary password: %s", tempPassword))
	c.Redirect(http.StatusSeeOther, "/admin/users")
}

func (d *Deps) AdminApplicants(c *gin.Context) {
	applicants, err := hr.ListApplicants(d.DB)
	if err != nil {
		abortError(c, err)
		return
	}
	d.renderHTML(c, http.StatusOK, "applicants.html", "Applicants", gin.H{
		"applicants": applicants,
		"flash":      takeFlash(c),
	})
}

func candidateIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, hr.NewError(hr.CodeValidation, "invalid candidate id", err)
	}
	return uint(id), nil
}

// AdminApplicantProfile ensures a candidate has a linked user before opening
// the admin profile view.
func (d *Deps) AdminApplicantProfile(c *gin.Context) {
	id, err := candidateIDParam(c)
	if err != nil {
		abortError(c, err)
		return
	}

	var cand models.Candidate
	if err := d.DB.First(&cand, id).Error; err != nil {
		abortError(c, hr.NewError(hr.CodeNotFound, "Candidate not found", err))
		return
	}

	user, tempPassword, err := hr.EnsureCandidateUser(d.DB, &cand)
	if err != nil {
		abortError(c, err)
		return
	}
	if tempPassword != "" {
		setFlash(c, fmt.Sprintf("Created user '%s'. Temporary password: %s", user.Username, tempPassword))
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/portal/profile/admin/%d", user.ID))
}

// AdminConvertApplicant moves an applicant to the Workers bucket.
func (d *Deps) AdminConvertApplicant(c *gin.Context) {
	id, err := candidateIDParam(c)
	if err != nil {
		abortError(c, err)
		return
	}

	result, err := hr.ConvertToWorker(d.DB, id)
	if err != nil {
		if hr.CodeOf(err) == hr.CodeNotFound {
			setFlash(c, "Candidate not found.")
			c.Redirect(http.StatusSeeOther, "/admin/applicants")
			return
		}
		abortError(c, err)
		return
	}

	setFlash(c, result.Notice)
	c.Redirect(http.StatusSeeOther, "/admin/users")
}
