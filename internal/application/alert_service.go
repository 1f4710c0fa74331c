package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rishusinha26/portfolio-backend/config"
	"github.com/rishusinha26/portfolio-backend/pkg/mailer"
	mailtpl "github.com/rishusinha26/portfolio-backend/pkg/mailer/templates"
	"github.com/rishusinha26/portfolio-backend/pkg/metrics"
)

const alertSendTimeout = 15 * time.Second

// DeliveryAlertService turns queued delivery-failure events into operator emails.
// It never touches message status.
type DeliveryAlertService struct {
	Sender mailer.Sender
	Cfg    *config.Config
	Logger logrus.FieldLogger
}

func NewDeliveryAlertService(sender mailer.Sender, cfg *config.Config, logger logrus.FieldLogger) *DeliveryAlertService {
	return &DeliveryAlertService{Sender: sender, Cfg: cfg, Logger: logger}
}

// Handle processes one queue payload. A validation error means the job can
// never succeed and should be dropped; any other error is worth a retry.
func (s *DeliveryAlertService) Handle(ctx context.Context, body []byte) error {
	var alert mailer.DeliveryAlert
	if err := json.Unmarshal(body, &alert); err != nil {
		return Validation("Malformed delivery alert", map[string]string{"payload": "invalid json"})
	}
	if alert.MessageID == "" {
		return Validation("Malformed delivery alert", map[string]string{"messageId": "is required"})
	}
	if s.Sender == nil {
		return newError(ErrNotification, "No mail provider for alerts", mailer.ErrNotConfigured)
	}
	to := s.Cfg.OperatorAddress()
	if to == "" {
		return newError(ErrNotification, "No operator address for alerts", mailer.ErrNotConfigured)
	}

	data := mailtpl.NewContactData(s.Cfg, alert.Name, alert.Email, alert.Subject, alert.Message,
		mailtpl.WithMessageID(alert.MessageID),
		mailtpl.WithReason(alert.Reason),
		mailtpl.WithTime(alert.CreatedAt),
	)
	subject, text, html, err := mailtpl.Render(mailtpl.DeliveryFailureAlert, data)
	if err != nil {
		return Validation("Delivery alert could not be rendered", map[string]string{"template": err.Error()})
	}

	c, cancel := context.WithTimeout(ctx, alertSendTimeout)
	defer cancel()
	start := time.Now()
	if err := s.Sender.Send(c, mailer.Email{To: to, ReplyTo: alert.Email, Subject: subject, Text: text, HTML: html}); err != nil {
		metrics.RecordNotification("alert", "failed", time.Since(start))
		return newError(ErrNotification, fmt.Sprintf("alert via %s failed", s.Sender.Provider()), err)
	}
	metrics.RecordNotification("alert", "sent", time.Since(start))
	s.Logger.WithField("message_id", alert.MessageID).Info("delivery alert sent")
	return nil
}
