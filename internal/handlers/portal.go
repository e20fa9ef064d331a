package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ndisproject/hrm-backend/internal/hr"
	"github.com/ndisproject/hrm-backend/internal/models"
)

func optionalField(c *gin.Context, name string) *string {
	if value, ok := c.GetPostForm(name); ok {
		return &value
	}
	return nil
}

func (d *Deps) PortalProfile(c *gin.Context) {
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
		d.renderHTML(c, http.StatusOK, "dashboard.html", "Dashboard", gin.H{
			"user":  user,
			"error": "No candidate record associated with this account.",
		})
		return
	}
	prof, err := hr.GetOrCreateProfile(d.DB, cand.ID)
	if err != nil {
		abortError(c, err)
		return
	}
	d.renderHTML(c, http.StatusOK, "profile.html", "Profile", gin.H{
		"user":      user,
		"candidate": cand,
		"profile":   prof,
	})
}

func (d *Deps) PortalProfileSubmit(c *gin.Context) {
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

	cand.JobTitle = strings.TrimSpace(c.PostForm("job_title"))
	if err := d.DB.Save(cand).Error; err != nil {
		abortError(c, hr.NewError(hr.CodeInternal, "failed to save candidate", err))
		return
	}

	prof, err := hr.UpdateProfile(d.DB, cand.ID, hr.ProfileChangeset{
		Summary:  optionalField(c, "summary"),
		Skills:   optionalField(c, "skills"),
		Linkedin: optionalField(c, "linkedin"),
		Address:  optionalField(c, "address"),
	})
	if err != nil {
		abortError(c, err)
		return
	}

	d.renderHTML(c, http.StatusOK, "profile.html", "Profile", gin.H{
		"user":      user,
		"candidate": cand,
		"profile":   prof,
		"saved":     true,
	})
}

func (d *Deps) PortalProfileUpload(c *gin.Context) {
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
	if _, _, err := d.saveProfileUpload(cand, c.PostForm("kind"), fh); err != nil {
		abortError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/portal/profile")
}

func (d *Deps) userByParam(c *gin.Context) (*models.User, error) {
	id, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		return nil, hr.NewError(hr.CodeValidation, "invalid user id", err)
	}
	var user models.User
	if err := d.DB.First(&user, uint(id)).Error; err != nil {
		return nil, hr.NewError(hr.CodeNotFound, "User not found", err)
	}
	return &user, nil
}

func (d *Deps) PortalAdminProfile(c *gin.Context) {
	user, err := d.userByParam(c)
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
		d.renderHTML(c, http.StatusOK, "profile.html", "Profile", gin.H{
			"user":       user,
			"admin_view": true,
			"error":      "No candidate record linked to this user.",
		})
		return
	}
	prof, err := hr.GetOrCreateProfile(d.DB, cand.ID)
	if err != nil {
		abortError(c, err)
		return
	}
	d.renderHTML(c, http.StatusOK, "profile.html", "Profile", gin.H{
		"user":       user,
		"candidate":  cand,
		"profile":    prof,
		"admin_view": true,
		"flash":      takeFlash(c),
	})
}

func (d *Deps) PortalAdminProfileSubmit(c *gin.Context) {
	user, err := d.userByParam(c)
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
		// admins can start a profile for a user without a candidate record
		cand = &models.Candidate{
			Email:  user.Email,
			Status: models.StatusApplied,
			UserID: &user.ID,
		}
		if err := d.DB.Create(cand).Error; err != nil {
			abortError(c, hr.NewError(hr.CodeInternal, "failed to create candidate", err))
			return
		}
	}

	cand.JobTitle = strings.TrimSpace(c.PostForm("job_title"))
	if err := d.DB.Save(cand).Error; err != nil {
		abortError(c, hr.NewError(hr.CodeInternal, "failed to save candidate", err))
		return
	}

	if _, err := hr.UpdateProfile(d.DB, cand.ID, hr.ProfileChangeset{
		Summary:  optionalField(c, "summary"),
		Skills:   optionalField(c, "skills"),
		Linkedin: optionalField(c, "linkedin"),
		Address:  optionalField(c, "address"),
	}); err != nil {
		abortError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/portal/profile/admin/%d?saved=1", user.ID))
}

func (d *Deps) PortalAdminProfileUpload(c *gin.Context) {
	user, err := d.userByParam(c)
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
	if _, _, err := d.saveProfileUpload(cand, c.PostForm("kind"), fh); err != nil {
		abortError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/portal/profile/admin/%d", user.ID))
}
