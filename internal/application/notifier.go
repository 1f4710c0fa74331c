package application

import (
	"context"
	"fmt"

	"github.com/rishusinha26/portfolio-backend/config"
	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/pkg/mailer"
	mailtpl "github.com/rishusinha26/portfolio-backend/pkg/mailer/templates"
)

// RequestMeta describes where a submission came from.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
}

// Notifier sends the two emails of the contact workflow.
type Notifier interface {
	NotifyOperator(ctx context.Context, m entity.Message, meta RequestMeta) error
	ConfirmSubmitter(ctx context.Context, m entity.Message) error
}

// ContactNotifier renders the contact templates and hands them to a mail Sender.
type ContactNotifier struct {
	Sender mailer.Sender
	Cfg    *config.Config
	// Geo is optional; when set the operator email carries the submitter's location.
	Geo mailtpl.GeoResolver
}

func NewContactNotifier(sender mailer.Sender, cfg *config.Config, geo mailtpl.GeoResolver) *ContactNotifier {
	return &ContactNotifier{Sender: sender, Cfg: cfg, Geo: geo}
}

func (n *ContactNotifier) NotifyOperator(ctx context.Context, m entity.Message, meta RequestMeta) error {
	if n.Sender == nil {
		return mailer.ErrNotConfigured
	}
	to := n.Cfg.OperatorAddress()
	if to == "" {
		return fmt.Errorf("%w: no operator address", mailer.ErrNotConfigured)
	}
	opts := []mailtpl.Option{
		mailtpl.WithMessageID(m.ID),
		mailtpl.WithIP(meta.ClientIP),
		mailtpl.WithUserAgent(meta.UserAgent),
		mailtpl.WithTime(m.CreatedAt),
	}
	if n.Geo != nil {
		opts = append(opts, mailtpl.WithGeoFromIP(ctx, n.Geo, meta.ClientIP))
	}
	data := mailtpl.NewContactData(n.Cfg, m.Name, m.Email, m.Subject, m.Body, opts...)
	subject, text, html, err := mailtpl.Render(mailtpl.OperatorNotification, data)
	if err != nil {
		return fmt.Errorf("render operator notification: %w", err)
	}
	return n.Sender.Send(ctx, mailer.Email{
		To:       to,
		ReplyTo:  m.Email,
		FromName: "Portfolio Contact",
		Subject:  subject,
		Text:     text,
		HTML:     html,
	})
}

func (n *ContactNotifier) ConfirmSubmitter(ctx context.Context, m entity.Message) error {
	if n.Sender == nil {
		return mailer.ErrNotConfigured
	}
	data := mailtpl.NewContactData(n.Cfg, m.Name, m.Email, m.Subject, m.Body, mailtpl.WithTime(m.CreatedAt))
	subject, text, html, err := mailtpl.Render(mailtpl.SubmissionConfirmation, data)
	if err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}
	return n.Sender.Send(ctx, mailer.Email{
		To:       m.Email,
		ReplyTo:  n.Cfg.OperatorAddress(),
		FromName: n.Cfg.OwnerName,
		Subject:  subject,
		Text:     text,
		HTML:     html,
	})
}
