package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishusinha26/portfolio-backend/internal/application"
	"github.com/rishusinha26/portfolio-backend/pkg/response"
)

type Uploader interface {
	Configured() bool
	Upload(ctx context.Context, original, contentType string, size int64, r io.Reader) (*application.UploadResult, error)
	Delete(ctx context.Context, fileName string) error
}

type UploadHandler struct {
	Svc Uploader
	// MaxBytes caps the multipart body; zero leaves it uncapped.
	MaxBytes int64
}

func NewUploadHandler(svc Uploader, maxBytes int64) *UploadHandler {
	return &UploadHandler{Svc: svc, MaxBytes: maxBytes}
}

func (h *UploadHandler) notConfigured(c *gin.Context) bool {
	if h.Svc != nil && h.Svc.Configured() {
		return false
	}
	response.Error[any](c, http.StatusNotImplemented,
		"File storage is not configured. Please set GCS_BUCKET and storage credentials.", nil)
	return true
}

// Upload handles POST /api/upload with a multipart "file" field.
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.notConfigured(c) {
		return
	}
	if h.MaxBytes > 0 {
		// leave room for multipart framing
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes+1<<20)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.Error[any](c, http.StatusRequestEntityTooLarge, "File too large", nil)
			return
		}
		response.Error[any](c, http.StatusBadRequest, "No file uploaded", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "Unable to read uploaded file", nil)
		return
	}
	defer f.Close()

	res, err := h.Svc.Upload(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		writeError(c, err, "File upload failed")
		return
	}
	response.Success(c, http.StatusOK, res, "File uploaded successfully", nil)
}

type deleteFileRequest struct {
	FileName string `json:"fileName"`
}

// Delete handles DELETE /api/upload with body {"fileName": "..."}.
func (h *UploadHandler) Delete(c *gin.Context) {
	if h.notConfigured(c) {
		return
	}
	var req deleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badBody(c, err)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), req.FileName); err != nil {
		writeError(c, err, "File delete failed")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "File deleted successfully", nil)
}
