package handlers

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ndisproject/hrm-backend/internal/hr"
	"github.com/ndisproject/hrm-backend/internal/models"
)

const (
	sessionUserID   = "user_id"
	sessionUsername = "username"
	sessionEmail    = "email"
	sessionFlash    = "flash"
)

func setSessionUser(c *gin.Context, user *models.User) error {
	sess := sessions.Default(c)
	sess.Set(sessionUserID, user.ID)
	sess.Set(sessionUsername, user.Username)
	sess.Set(sessionEmail, user.Email)
	return sess.Save()
}

func clearSession(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	return sess.Save()
}

// currentUser resolves the authenticated user from the session cookie.
func (d *Deps) currentUser(c *gin.Context) (*models.User, error) {
	sess := sessions.Default(c)
	raw := sess.Get(sessionUserID)
	if raw == nil {
		return nil, hr.NewError(hr.CodeUnauthenticated, "not authenticated", nil)
	}
	id, ok := raw.(uint)
	if !ok {
		return nil, hr.NewError(hr.CodeUnauthenticated, "not authenticated", nil)
	}
	var user models.User
	if err := d.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, hr.NewError(hr.CodeUnauthenticated, "user not found", err)
		}
		return nil, hr.NewError(hr.CodeInternal, "failed to load session user", err)
	}
	return &user, nil
}

// setFlash stores a one-shot message in the session.
func setFlash(c *gin.Context, msg string) {
	sess := sessions.Default(c)
	sess.Set(sessionFlash, msg)
	if err := sess.Save(); err != nil {
		log.WithError(err).Warn("failed to save flash message")
	}
}

// takeFlash reads and clears the one-shot flash message. A flash is shown at
// most once.
func takeFlash(c *gin.Context) string {
	sess := sessions.Default(c)
	raw := sess.Get(sessionFlash)
	if raw == nil {
		return ""
	}
	sess.Delete(sessionFlash)
	if err := sess.Save(); err != nil {
		log.WithError(err).Warn("failed to clear flash message")
	}
	msg, _ := raw.(string)
	return msg
}
