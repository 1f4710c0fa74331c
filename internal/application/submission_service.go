package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/internal/domain/repository"
	"github.com/rishusinha26/portfolio-backend/pkg/mailer"
	"github.com/rishusinha26/portfolio-backend/pkg/metrics"
	"github.com/rishusinha26/portfolio-backend/pkg/validation"
)

const (
	DefaultOperatorTimeout     = 30 * time.Second
	DefaultConfirmationTimeout = 20 * time.Second
	alertPublishTimeout        = 5 * time.Second
)

// ErrNotificationTimeout marks a notification that did not finish within its bound.
var ErrNotificationTimeout = errors.New("notification timed out")

// AlertPublisher queues delivery-failure alerts.
type AlertPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// SubmitInput is a raw contact-form payload.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Message string
	RequestMeta
}

// SubmissionService records contact messages and notifies both parties.
type SubmissionService struct {
	Messages repository.MessageRepository
	Notifier Notifier
	// Alerts is optional.
	Alerts AlertPublisher
	Logger logrus.FieldLogger

	OperatorTimeout     time.Duration
	ConfirmationTimeout time.Duration

	now func() time.Time
}

func NewSubmissionService(messages repository.MessageRepository, notifier Notifier, logger logrus.FieldLogger) *SubmissionService {
	return &SubmissionService{
		Messages:            messages,
		Notifier:            notifier,
		Logger:              logger,
		OperatorTimeout:     DefaultOperatorTimeout,
		ConfirmationTimeout: DefaultConfirmationTimeout,
	}
}

func boundOr(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func (s *SubmissionService) operatorBound() time.Duration {
	return boundOr(s.OperatorTimeout, DefaultOperatorTimeout)
}

func (s *SubmissionService) confirmationBound() time.Duration {
	return boundOr(s.ConfirmationTimeout, DefaultConfirmationTimeout)
}

func (s *SubmissionService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

// validate trims the payload and reports every invalid field.
func (in SubmitInput) validate() (entity.Message, *Error) {
	m := entity.Message{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Body:    strings.TrimSpace(in.Message),
	}
	if m.Subject == "" {
		m.Subject = entity.DefaultSubject
	}

	fields := map[string]string{}
	if m.Name == "" {
		fields["name"] = "is required"
	}
	if m.Email == "" {
		fields["email"] = "is required"
	} else if !validation.IsEmail(m.Email) {
		fields["email"] = "must be a valid email"
	}
	if m.Body == "" {
		fields["message"] = "is required"
	}
	switch {
	case len(fields) == 0:
		return m, nil
	case len(fields) == 1 && fields["email"] == "must be a valid email":
		return m, Validation("Please provide a valid email address", fields)
	default:
		return m, Validation("Please provide name, email, and message", fields)
	}
}

// Submit validates and stores the message, then runs the two bounded
// notifications in order. Once the record is stored the call succeeds and the
// returned message carries a terminal status.
func (s *SubmissionService) Submit(ctx context.Context, in SubmitInput) (*entity.Message, error) {
	msg, verr := in.validate()
	if verr != nil {
		metrics.RecordSubmission("rejected")
		return nil, verr
	}

	now := s.clock()
	msg.Status = entity.StatusPending
	msg.Read = false
	msg.CreatedAt = now
	msg.UpdatedAt = now
	if err := s.Messages.Create(ctx, &msg); err != nil {
		metrics.RecordSubmission("persist_failed")
		s.Logger.WithError(err).Error("failed to store contact message")
		return nil, Persistence("Failed to save message", err)
	}
	log := s.Logger.WithField("message_id", msg.ID)

	// The record must not stay pending if the client goes away.
	bg := context.WithoutCancel(ctx)

	opErr := s.await(bg, "operator", s.operatorBound(), func(c context.Context) error {
		return s.Notifier.NotifyOperator(c, msg, in.RequestMeta)
	})
	status := entity.StatusCompleted
	if opErr != nil {
		status = entity.StatusEmailFailed
		log.WithError(opErr).Warn("operator notification failed")
	} else {
		log.Info("operator notification sent")
	}
	if err := s.Messages.UpdateStatus(bg, msg.ID, status); err != nil {
		log.WithError(err).WithField("status", status).Error("failed to persist message status")
	}
	msg.Status = status
	msg.UpdatedAt = s.clock()
	metrics.RecordSubmission(string(status))

	if status == entity.StatusEmailFailed {
		s.publishAlert(bg, msg, opErr)
	}

	if err := s.await(bg, "confirmation", s.confirmationBound(), func(c context.Context) error {
		return s.Notifier.ConfirmSubmitter(c, msg)
	}); err != nil {
		log.WithError(err).Warn("confirmation email failed")
	} else {
		log.Info("confirmation email sent")
	}

	return &msg, nil
}

// await runs fn in its own goroutine and waits at most timeout for it.
// On expiry fn keeps running under its own transport timeout; only the wait ends.
func (s *SubmissionService) await(ctx context.Context, kind string, timeout time.Duration, fn func(context.Context) error) error {
	start := time.Now()
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.Logger.WithField("kind", kind).WithField("panic", r).Error("notification panicked")
				done <- errors.New("notification panicked")
			}
		}()
		done <- fn(ctx)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		outcome := "sent"
		if err != nil {
			outcome = "failed"
			if errors.Is(err, mailer.ErrNotConfigured) {
				outcome = "not_configured"
			}
			err = &Error{Kind: ErrNotification, Message: kind + " notification failed", Err: err}
		}
		metrics.RecordNotification(kind, outcome, time.Since(start))
		return err
	case <-timer.C:
		metrics.RecordNotification(kind, "timeout", time.Since(start))
		return &Error{Kind: ErrNotification, Message: kind + " notification timed out", Err: ErrNotificationTimeout}
	}
}

func (s *SubmissionService) publishAlert(ctx context.Context, m entity.Message, cause error) {
	if s.Alerts == nil {
		return
	}
	reason := "unknown"
	if cause != nil {
		reason = cause.Error()
	}
	alert := mailer.DeliveryAlert{
		MessageID: m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Body,
		Reason:    reason,
		CreatedAt: m.CreatedAt,
		FailedAt:  s.clock(),
	}
	c, cancel := context.WithTimeout(ctx, alertPublishTimeout)
	defer cancel()
	if err := s.Alerts.PublishJSON(c, alert); err != nil {
		s.Logger.WithError(err).WithField("message_id", m.ID).Warn("failed to publish delivery alert")
	}
}
