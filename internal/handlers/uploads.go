package handlers

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/ndisproject/hrm-backend/internal/hr"
	"github.com/ndisproject/hrm-backend/internal/models"
)

// saveProfileUpload persists an uploaded resume/photo and records it on the
// candidate profile. The profile mutation runs in a transaction; if it fails
// the stored file is removed so no orphan remains.
func (d *Deps) saveProfileUpload(cand *models.Candidate, kind string, fh *multipart.FileHeader) (string, string, error) {
	kind, err := hr.NormalizeKind(kind)
	if err != nil {
		return "", "", err
	}

	f, err := fh.Open()
	if err != nil {
		return "", "", hr.NewError(hr.CodeValidation, "failed to read upload", err)
	}
	defer f.Close()

	rel, err := d.Store.Save(cand.ID, kind, fh.Filename, f)
	if err != nil {
		return "", "", err
	}

	err = d.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := hr.SetProfileFile(tx, cand.ID, kind, rel); err != nil {
			return err
		}
		if kind == hr.KindResume && strings.EqualFold(filepath.Ext(rel), ".pdf") {
			// best effort: a resume that fails to parse is still stored
			text, err := d.Store.ExtractPDFText(rel)
			if err != nil {
				log.WithError(err).Warn("failed to extract resume text")
				return nil
			}
			return hr.SetResumeText(tx, cand.ID, text)
		}
		return nil
	})
	if err != nil {
		if rmErr := d.Store.Remove(rel); rmErr != nil {
			log.WithError(rmErr).Warn("failed to remove orphaned upload")
		}
		return "", "", err
	}
	return kind, rel, nil
}
