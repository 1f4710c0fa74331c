package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rishusinha26/portfolio-backend/internal/application"
	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/internal/interface/middleware"
	"github.com/rishusinha26/portfolio-backend/pkg/response"
)

// Submitter runs the contact workflow.
type Submitter interface {
	Submit(ctx context.Context, in application.SubmitInput) (*entity.Message, error)
}

// Inbox is the admin view of stored messages.
type Inbox interface {
	List(ctx context.Context) ([]entity.Message, error)
	MarkRead(ctx context.Context, id string) (*entity.Message, error)
	Delete(ctx context.Context, id string) error
}

type MessageHandler struct {
	Submissions Submitter
	Inbox       Inbox
	Logger      logrus.FieldLogger
}

func NewMessageHandler(s Submitter, inbox Inbox, logger logrus.FieldLogger) *MessageHandler {
	return &MessageHandler{Submissions: s, Inbox: inbox, Logger: logger}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact.
func (h *MessageHandler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	msg, err := h.Submissions.Submit(c.Request.Context(), application.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		RequestMeta: application.RequestMeta{
			ClientIP:  middleware.ClientIP(c),
			UserAgent: c.Request.UserAgent(),
		},
	})
	if err != nil {
		// a failed primary write is reported as a bad request on this endpoint
		if errors.Is(err, application.ErrPersistence) {
			writeErrorStatus(c, http.StatusBadRequest, err, "Failed to save message")
			return
		}
		writeError(c, err, "Failed to send message")
		return
	}
	response.Success(c, http.StatusCreated, msg, "Message sent successfully", nil)
}

// List handles GET /api/contact.
func (h *MessageHandler) List(c *gin.Context) {
	list, err := h.Inbox.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list messages")
		writeError(c, err, "Failed to fetch messages")
		return
	}
	response.Success(c, http.StatusOK, list, "", nil)
}

// MarkRead handles PATCH /api/contact/:id/read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	msg, err := h.Inbox.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "Failed to update message")
		return
	}
	response.Success(c, http.StatusOK, msg, "", nil)
}

// Delete handles DELETE /api/contact/:id.
func (h *MessageHandler) Delete(c *gin.Context) {
	if err := h.Inbox.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "Failed to delete message")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Message deleted successfully", nil)
}
