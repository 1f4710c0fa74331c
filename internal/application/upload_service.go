package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/rishusinha26/portfolio-backend/pkg/helpers"
)

const storageNotConfigured = "File storage is not configured. Please set GCS_BUCKET and storage credentials."

// ObjectStore is the bucket behind the upload endpoints.
type ObjectStore interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
}

// UploadResult is returned to the admin UI.
type UploadResult struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

type UploadService struct {
	// Store is nil when no bucket is configured.
	Store    ObjectStore
	MaxBytes int64

	now func() time.Time
}

func NewUploadService(store ObjectStore, maxBytes int64) *UploadService {
	return &UploadService{Store: store, MaxBytes: maxBytes}
}

// Configured reports whether uploads can be served.
func (s *UploadService) Configured() bool { return s.Store != nil }

// ObjectName prefixes the base of the original name with the upload time in unix millis.
func ObjectName(at time.Time, original string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(original), "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "file"
	}
	return fmt.Sprintf("%d_%s", at.UnixMilli(), base)
}

func (s *UploadService) Upload(ctx context.Context, original, contentType string, size int64, r io.Reader) (*UploadResult, error) {
	if s.Store == nil {
		return nil, newError(ErrNotConfigured, storageNotConfigured, nil)
	}
	if s.MaxBytes > 0 && size > s.MaxBytes {
		return nil, Validation(fmt.Sprintf("File too large (max %d bytes)", s.MaxBytes), map[string]string{"file": "too large"})
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	now := time.Now()
	if s.now != nil {
		now = s.now()
	}
	name := ObjectName(now, original)
	url, err := s.Store.Upload(ctx, name, contentType, r)
	if err != nil {
		return nil, newError(ErrUnavailable, "File upload failed", err)
	}
	return &UploadResult{URL: url, FileName: name}, nil
}

func (s *UploadService) Delete(ctx context.Context, fileName string) error {
	if s.Store == nil {
		return newError(ErrNotConfigured, storageNotConfigured, nil)
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return Validation("File name required", map[string]string{"fileName": "is required"})
	}
	if err := s.Store.Delete(ctx, fileName); err != nil {
		if errors.Is(err, helpers.ErrObjectNotFound) {
			return NotFound("File not found")
		}
		return newError(ErrUnavailable, "File delete failed", err)
	}
	return nil
}
