package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ndisproject/hrm-backend/internal/hr"
	"github.com/ndisproject/hrm-backend/internal/models"
)

func (d *Deps) Home(c *gin.Context) {
	user, err := d.currentUser(c)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/auth/login")
		return
	}
	cand, err := hr.CandidateByUser(d.DB, user.ID)
	if err != nil {
		abortError(c, err)
		return
	}
	d.renderHTML(c, http.StatusOK, "dashboard.html", "Dashboard", gin.H{
		"user":      user,
		"candidate": cand,
	})
}

func (d *Deps) CandidateForm(c *gin.Context) {
	d.renderHTML(c, http.StatusOK, "index.html", "Candidate Intake", gin.H{})
}

func (d *Deps) LoginForm(c *gin.Context) {
	d.renderHTML(c, http.StatusOK, "login.html", "Login", gin.H{})
}

func (d *Deps) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	var user models.User
	err := d.DB.Where("email = ?", email).First(&user).Error
	if err != nil || !hr.CheckPassword(password, user.HashedPassword) {
		d.renderHTML(c, http.StatusUnauthorized, "login.html", "Login", gin.H{
			"error": "Invalid credentials",
		})
		return
	}

	if err := setSessionUser(c, &user); err != nil {
		log.WithError(err).Error("failed to save session")
		abortError(c, hr.NewError(hr.CodeInternal, "failed to save session", err))
		return
	}

	cand, err := hr.CandidateByUser(d.DB, user.ID)
	if err != nil {
		abortError(c, err)
		return
	}
	if cand == nil {
		// fall back to an unclaimed candidate row with the same email
		var byEmail models.Candidate
		if d.DB.Where("email = ?", user.Email).First(&byEmail).Error == nil {
			cand = &byEmail
		}
	}
	d.renderHTML(c, http.StatusOK, "dashboard.html", "Dashboard", gin.H{
		"user":      &user,
		"candidate": cand,
	})
}

func (d *Deps) RegisterForm(c *gin.Context) {
	d.renderHTML(c, http.StatusOK, "register.html", "Register", gin.H{})
}

func (d *Deps) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	if username == "" || email == "" || password == "" {
		d.renderHTML(c, http.StatusBadRequest, "register.html", "Register", gin.H{
			"error": "username, email and password are required",
		})
		return
	}

	var existing models.User
	if d.DB.Where("email = ? OR username = ?", email, username).First(&existing).Error == nil {
		d.renderHTML(c, http.StatusBadRequest, "register.html", "Register", gin.H{
			"error": "Email already registered",
		})
		return
	}

	hashed, err := hr.HashPassword(password)
	if err != nil {
		abortError(c, hr.NewError(hr.CodeInternal, "failed to hash password", err))
		return
	}
	user := models.User{Username: username, Email: email, HashedPassword: hashed}
	if err := d.DB.Create(&user).Error; err != nil {
		if hr.IsDuplicate(err) {
			d.renderHTML(c, http.StatusBadRequest, "register.html", "Register", gin.H{
				"error": "Email already registered",
			})
			return
		}
		abortError(c, hr.NewError(hr.CodeInternal, "failed to create user", err))
		return
	}

	// ensure a linked candidate exists so the account shows up under applicants
	var cand models.Candidate
	err = d.DB.Where("email = ?", email).First(&cand).Error
	if err != nil {
		cand = models.Candidate{
			Email:  email,
			Status: models.StatusApplied,
			UserID: &user.ID,
		}
		if err := d.DB.Create(&cand).Error; err != nil {
			abortError(c, hr.NewError(hr.CodeInternal, "failed to create candidate", err))
			return
		}
	} else {
		updated := false
		if cand.UserID == nil {
			cand.UserID = &user.ID
			updated = true
		}
		if cand.Status == "" {
			cand.Status = models.StatusApplied
			updated = true
		}
		if updated {
			if err := d.DB.Save(&cand).Error; err != nil {
				abortError(c, hr.NewError(hr.CodeInternal, "failed to link candidate", err))
				return
			}
		}
	}

	if err := setSessionUser(c, &user); err != nil {
		abortError(c, hr.NewError(hr.CodeInternal, "failed to save session", err))
		return
	}
	d.renderHTML(c, http.StatusOK, "dashboard.html", "Dashboard", gin.H{
		"user":      &user,
		"candidate": &cand,
	})
}

func (d *Deps) Logout(c *gin.Context) {
	if err := clearSession(c); err != nil {
		log.WithError(err).Warn("failed to clear session")
	}
	c.Redirect(http.StatusSeeOther, "/")
}
