package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/ndisproject/hrm-backend/internal/hr"
)

// Store persists uploaded resumes and photos under Root, one file per kind
// per candidate: <root>/<candidate_id>/<kind><ext>.
type Store struct {
	Root string
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}
	return &Store{Root: root}, nil
}

func defaultExt(kind string) string {
	if kind == hr.KindPhoto {
		return ".png"
	}
	return ".pdf"
}

// Save writes the upload and returns its path relative to Root. Empty
// uploads are rejected; a partially written file is removed on any failure.
func (s *Store) Save(candidateID uint, kind, filename string, r io.Reader) (string, error) {
	kind, err := hr.NormalizeKind(kind)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = defaultExt(kind)
	}

	folder := filepath.Join(s.Root, fmt.Sprintf("%d", candidateID))
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", hr.NewError(hr.CodeInternal, "failed to create upload directory", err)
	}

	// stage under a random name first so a failed write never clobbers the
	// previous upload
	dest := filepath.Join(folder, kind+ext)
	tmp := filepath.Join(folder, "."+uuid.NewString()+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return "", hr.NewError(hr.CodeInternal, "failed to open destination file", err)
	}

	written, err := io.Copy(f, r)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return "", hr.NewError(hr.CodeInternal, "failed to write upload", err)
	}
	if written == 0 {
		os.Remove(tmp)
		return "", hr.NewError(hr.CodeEmptyUpload, "uploaded file was empty", nil)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", hr.NewError(hr.CodeInternal, "failed to finalize upload", err)
	}

	rel, err := filepath.Rel(s.Root, dest)
	if err != nil {
		return "", hr.NewError(hr.CodeInternal, "failed to resolve upload path", err)
	}
	return filepath.ToSlash(rel), nil
}

// Remove deletes a previously stored upload by its relative path.
func (s *Store) Remove(relPath string) error {
	return os.Remove(filepath.Join(s.Root, filepath.FromSlash(relPath)))
}

// ExtractPDFText pulls the plain text out of a stored PDF resume.
func (s *Store) ExtractPDFText(relPath string) (string, error) {
	path := filepath.Join(s.Root, filepath.FromSlash(relPath))
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	buf := &bytes.Buffer{}
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
