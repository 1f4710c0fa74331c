package mailer

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain  string
	APIKey  string
	Sender  string
	Timeout time.Duration
}

func NewMailgun(domain, apiKey, sender string) (*Mailgun, error) {
	if domain == "" || apiKey == "" || sender == "" {
		return nil, fmt.Errorf("%w: set MAILGUN_DOMAIN/MAILGUN_API_KEY/MAILGUN_SENDER", ErrNotConfigured)
	}
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender, Timeout: 10 * time.Second}, nil
}

func (m *Mailgun) Provider() string { return "mailgun" }

// From is the configured sender address.
func (m *Mailgun) From() string { return m.Sender }

func (m *Mailgun) from(e Email) string {
	if e.FromName == "" {
		return m.Sender
	}
	return fmt.Sprintf("%q <%s>", e.FromName, m.Sender)
}

// Send sends an email via Mailgun; HTML is used when present.
func (m *Mailgun) Send(ctx context.Context, e Email) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.from(e), e.Subject, e.Text, e.To)
	if e.HTML != "" {
		msg.SetHtml(e.HTML)
	}
	if e.ReplyTo != "" {
		msg.SetReplyTo(e.ReplyTo)
	}
	c, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}
