package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ndisproject/hrm-backend/internal/hr"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store
}

func TestSaveLayoutAndRelativePath(t *testing.T) {
	store := newTestStore(t)

	rel, err := store.Save(7, "resume", "cv.pdf", strings.NewReader("%PDF-1.4 stub"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if rel != "7/resume.pdf" {
		t.Errorf("rel = %q, want 7/resume.pdf", rel)
	}
	data, err := os.ReadFile(filepath.Join(store.Root, "7", "resume.pdf"))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "%PDF-1.4 stub" {
		t.Errorf("stored content = %q", data)
	}
}

func TestSaveDefaultExtensions(t *testing.T) {
	store := newTestStore(t)

	rel, err := store.Save(1, "resume", "noext", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if rel != "1/resume.pdf" {
		t.Errorf("resume default ext: %q", rel)
	}

	rel, err = store.Save(1, "photo", "", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if rel != "1/photo.png" {
		t.Errorf("photo default ext: %q", rel)
	}
}

func TestSaveRejectsEmptyUpload(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(3, "resume", "cv.pdf", strings.NewReader(""))
	if err == nil {
		t.Fatal("expected empty upload to be rejected")
	}
	if hr.CodeOf(err) != hr.CodeEmptyUpload {
		t.Errorf("code = %q, want %q", hr.CodeOf(err), hr.CodeEmptyUpload)
	}
	if _, statErr := os.Stat(filepath.Join(store.Root, "3", "resume.pdf")); !os.IsNotExist(statErr) {
		t.Error("rejected upload must not leave a file behind")
	}
}

func TestSaveDoesNotClobberOnOverwrite(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(5, "photo", "a.png", strings.NewReader("old")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// an empty re-upload fails and must leave the previous file intact
	if _, err := store.Save(5, "photo", "b.png", strings.NewReader("")); err == nil {
		t.Fatal("expected empty re-upload to fail")
	}
	data, err := os.ReadFile(filepath.Join(store.Root, "5", "photo.png"))
	if err != nil {
		t.Fatalf("previous upload lost: %v", err)
	}
	if string(data) != "old" {
		t.Errorf("previous upload content = %q", data)
	}

	// a good re-upload of the same kind replaces in place
	if _, err := store.Save(5, "photo", "c.png", strings.NewReader("new")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(store.Root, "5", "photo.png"))
	if string(data) != "new" {
		t.Errorf("replaced content = %q", data)
	}
}

func TestSaveInvalidKind(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Save(1, "certificate", "x.pdf", strings.NewReader("x")); err == nil {
		t.Error("unknown kind must be rejected")
	}
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)
	rel, err := store.Save(2, "resume", "cv.pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Remove(rel); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Root, "2", "resume.pdf")); !os.IsNotExist(err) {
		t.Error("file still present after Remove")
	}
}
