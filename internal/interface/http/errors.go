package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishusinha26/portfolio-backend/internal/application"
	"github.com/rishusinha26/portfolio-backend/pkg/response"
	"github.com/rishusinha26/portfolio-backend/pkg/validation"
)

// statusOf maps an application error kind to an HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, application.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrNotConfigured):
		return http.StatusNotImplemented
	case errors.Is(err, application.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err with its mapped status. Causes are never exposed.
func writeError(c *gin.Context, err error, fallback string) {
	writeErrorStatus(c, statusOf(err), err, fallback)
}

func writeErrorStatus(c *gin.Context, status int, err error, fallback string) {
	var details any
	if f := application.FieldsOf(err); len(f) > 0 {
		details = f
	}
	response.Error[any](c, status, application.MessageOf(err, fallback), details)
}

func badBody(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "Invalid request body", validation.ToDetails(err))
}
