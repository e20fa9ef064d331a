package hr

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ndisproject/hrm-backend/internal/models"
)

// usernameLocks serializes the uniqueness probe per derived base username so
// two concurrent provisions cannot both claim the same free name.
var usernameLocks sync.Map

const maxProvisionAttempts = 3

// HashPassword produces the stored credential hash.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword verifies a plaintext password against a stored hash.
func CheckPassword(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// TempPassword returns a random URL-safe credential. It is never re-derivable.
func TempPassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// deriveBaseUsername picks a base from the email local part, then first.last,
// then user<id>. Always non-empty.
func deriveBaseUsername(cand *models.Candidate) string {
	if cand.Email != "" && strings.Contains(cand.Email, "@") {
		if local := strings.SplitN(cand.Email, "@", 2)[0]; local != "" {
			return local
		}
	}
	name := strings.Trim(strings.ToLower(strings.TrimSpace(cand.FirstName))+"."+strings.ToLower(strings.TrimSpace(cand.LastName)), ".")
	if name != "" {
		return name
	}
	return fmt.Sprintf("user%d", cand.ID)
}

// freeUsername probes for the first unclaimed username derived from base,
// appending an incrementing numeric suffix starting at 2.
func freeUsername(db *gorm.DB, base string) (string, error) {
	username := base
	for suffix := 2; ; suffix++ {
		var existing models.User
		err := db.Where("username = ?", username).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return username, nil
		}
		if err != nil {
			return "", err
		}
		username = fmt.Sprintf("%s%d", base, suffix)
	}
}

// EnsureCandidateUser guarantees the candidate has a linked user. An already
// linked or email-matched user is reused without touching credentials; the
// returned temp password is non-empty only when a new user was created, and
// is surfaced exactly once.
func EnsureCandidateUser(db *gorm.DB, cand *models.Candidate) (*models.User, string, error) {
	if cand.UserID != nil {
		var user models.User
		err := db.First(&user, *cand.UserID).Error
		if err == nil {
			return &user, "", nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", NewError(CodeInternal, "failed to load linked user", err)
		}
	}

	if cand.Email != "" {
		var user models.User
		err := db.Where("email = ?", cand.Email).First(&user).Error
		if err == nil {
			cand.UserID = &user.ID
			if err := db.Model(cand).Update("user_id", user.ID).Error; err != nil {
				return nil, "", NewError(CodeInternal, "failed to link candidate", err)
			}
			return &user, "", nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", NewError(CodeInternal, "failed to look up user by email", err)
		}
	}

	return createCandidateUser(db, cand)
}

func createCandidateUser(db *gorm.DB, cand *models.Candidate) (*models.User, string, error) {
	base := deriveBaseUsername(cand)

	muIface, _ := usernameLocks.LoadOrStore(base, &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	tempPassword, err := TempPassword()
	if err != nil {
		return nil, "", NewError(CodeInternal, "failed to generate temporary password", err)
	}
	hashed, err := HashPassword(tempPassword)
	if err != nil {
		return nil, "", NewError(CodeInternal, "failed to hash temporary password", err)
	}

	var user models.User
	for attempt := 0; ; attempt++ {
		username, err := freeUsername(db, base)
		if err != nil {
			return nil, "", NewError(CodeInternal, "failed to probe usernames", err)
		}

		email := cand.Email
		if email == "" {
			email = username + "@example.com"
		}

		user = models.User{Username: username, Email: email, HashedPassword: hashed}
		err = db.Create(&user).Error
		if err == nil {
			break
		}
		// A concurrent commit can still win the username; the unique index
		// catches it and the probe is retried.
		if IsDuplicate(err) && attempt < maxProvisionAttempts {
			continue
		}
		return nil, "", NewError(CodeInternal, "failed to create user", err)
	}

	cand.UserID = &user.ID
	if err := db.Model(cand).Update("user_id", user.ID).Error; err != nil {
		return nil, "", NewError(CodeInternal, "failed to link candidate", err)
	}
	return &user, tempPassword, nil
}
