package hr

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ndisproject/hrm-backend/internal/models"
)

func TestDeriveBaseUsername(t *testing.T) {
	cases := []struct {
		name string
		cand models.Candidate
		want string
	}{
		{"email local part", models.Candidate{Email: "jane.doe@example.com"}, "jane.doe"},
		{"name fallback", models.Candidate{FirstName: "Jane", LastName: "Doe"}, "jane.doe"},
		{"first name only", models.Candidate{FirstName: "Jane"}, "jane"},
		{"id fallback", models.Candidate{ID: 42}, "user42"},
		{"email wins over name", models.Candidate{Email: "jd@example.com", FirstName: "Jane"}, "jd"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := deriveBaseUsername(&tc.cand); got != tc.want {
				t.Errorf("deriveBaseUsername() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEnsureCandidateUserCreatesAndLinks(t *testing.T) {
	db := openTestDB(t)
	cand := createCandidate(t, db, &models.Candidate{
		FirstName: "Jane", LastName: "Doe", Email: "jane.doe@example.com",
	})

	user, tempPassword, err := EnsureCandidateUser(db, cand)
	if err != nil {
		t.Fatalf("EnsureCandidateUser failed: %v", err)
	}
	if user.Username != "jane.doe" {
		t.Errorf("username = %q, want jane.doe", user.Username)
	}
	if tempPassword == "" {
		t.Error("expected a temporary password for a newly created user")
	}
	if !CheckPassword(tempPassword, user.HashedPassword) {
		t.Error("temporary password does not verify against stored hash")
	}
	if cand.UserID == nil || *cand.UserID != user.ID {
		t.Error("candidate not linked to created user")
	}

	var stored models.Candidate
	if err := db.First(&stored, cand.ID).Error; err != nil {
		t.Fatalf("failed to reload candidate: %v", err)
	}
	if stored.UserID == nil || *stored.UserID != user.ID {
		t.Error("candidate link not persisted")
	}
}

func TestEnsureCandidateUserReusesLinkedUser(t *testing.T) {
	db := openTestDB(t)
	existing := createUser(t, db, "jane", "jane@example.com")
	cand := createCandidate(t, db, &models.Candidate{
		Email: "other@example.com", UserID: &existing.ID,
	})

	user, tempPassword, err := EnsureCandidateUser(db, cand)
	if err != nil {
		t.Fatalf("EnsureCandidateUser failed: %v", err)
	}
	if user.ID != existing.ID {
		t.Errorf("expected linked user %d, got %d", existing.ID, user.ID)
	}
	if tempPassword != "" {
		t.Error("reusing a linked user must not regenerate credentials")
	}
}

func TestEnsureCandidateUserLinksByEmail(t *testing.T) {
	db := openTestDB(t)
	existing := createUser(t, db, "jane", "jane@example.com")
	cand := createCandidate(t, db, &models.Candidate{Email: "jane@example.com"})

	user, tempPassword, err := EnsureCandidateUser(db, cand)
	if err != nil {
		t.Fatalf("EnsureCandidateUser failed: %v", err)
	}
	if user.ID != existing.ID {
		t.Errorf("expected email-matched user %d, got %d", existing.ID, user.ID)
	}
	if tempPassword != "" {
		t.Error("linking an existing user must not regenerate credentials")
	}
	if cand.UserID == nil || *cand.UserID != existing.ID {
		t.Error("candidate not linked to matched user")
	}
}

func TestEnsureCandidateUserSuffixesTakenUsernames(t *testing.T) {
	db := openTestDB(t)
	createUser(t, db, "sam", "sam@first.com")
	createUser(t, db, "sam2", "sam@second.com")
	cand := createCandidate(t, db, &models.Candidate{Email: "sam@third.com"})

	user, _, err := EnsureCandidateUser(db, cand)
	if err != nil {
		t.Fatalf("EnsureCandidateUser failed: %v", err)
	}
	if user.Username != "sam3" {
		t.Errorf("username = %q, want sam3", user.Username)
	}
}

func TestEnsureCandidateUserEmptyCandidate(t *testing.T) {
	db := openTestDB(t)
	cand := createCandidate(t, db, &models.Candidate{Email: "only@example.com"})
	// wipe the email path to force the id fallback
	cand.Email = ""
	cand.FirstName = ""
	cand.LastName = ""

	user, _, err := EnsureCandidateUser(db, cand)
	if err != nil {
		t.Fatalf("EnsureCandidateUser failed: %v", err)
	}
	want := fmt.Sprintf("user%d", cand.ID)
	if user.Username != want {
		t.Errorf("username = %q, want %q", user.Username, want)
	}
	if user.Email != want+"@example.com" {
		t.Errorf("email = %q, want placeholder %s@example.com", user.Email, want)
	}
}

func TestConcurrentProvisioningYieldsDistinctUsernames(t *testing.T) {
	db := openTestDB(t)

	const n = 8
	candidates := make([]*models.Candidate, n)
	for i := 0; i < n; i++ {
		candidates[i] = createCandidate(t, db, &models.Candidate{
			Email: fmt.Sprintf("alex@host%d.com", i),
		})
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = EnsureCandidateUser(db, candidates[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("provisioning %d failed: %v", i, err)
		}
	}

	var usernames []string
	if err := db.Model(&models.User{}).Pluck("username", &usernames).Error; err != nil {
		t.Fatalf("failed to list usernames: %v", err)
	}
	if len(usernames) != n {
		t.Fatalf("expected %d users, got %d", n, len(usernames))
	}
	seen := make(map[string]bool, n)
	for _, u := range usernames {
		if u == "" {
			t.Error("provisioned an empty username")
		}
		if seen[u] {
			t.Errorf("duplicate username %q", u)
		}
		seen[u] = true
	}
}

func TestTempPasswordIsRandom(t *testing.T) {
	a, err := TempPassword()
	if err != nil {
		t.Fatalf("TempPassword failed: %v", err)
	}
	b, err := TempPassword()
	if err != nil {
		t.Fatalf("TempPassword failed: %v", err)
	}
	if a == "" || a == b {
		t.Errorf("temporary passwords must be non-empty and unique, got %q and %q", a, b)
	}
}
