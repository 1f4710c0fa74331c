package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPConfig configures an SMTP relay. Secure selects implicit TLS (port 465 style).
type SMTPConfig struct {
	Host     string
	Port     int
	Secure   bool
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// GmailConfig is the shortcut used when no explicit relay host is given.
func GmailConfig(user, pass string, timeout time.Duration) SMTPConfig {
	return SMTPConfig{Host: "smtp.gmail.com", Port: 587, Username: user, Password: pass, From: user, Timeout: timeout}
}

// SMTP sends mail through an SMTP relay with go-mail.
type SMTP struct {
	cfg  SMTPConfig
	name string
}

func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Username == "" {
		return nil, fmt.Errorf("%w: set SMTP_HOST/SMTP_USER or EMAIL_USER/EMAIL_PASS", ErrNotConfigured)
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	name := "smtp"
	if cfg.Host == "smtp.gmail.com" {
		name = "gmail"
	}
	return &SMTP{cfg: cfg, name: name}, nil
}

func (s *SMTP) Provider() string { return s.name }

// From is the envelope sender address.
func (s *SMTP) From() string { return s.cfg.From }

func (s *SMTP) buildMsg(e Email) (*mail.Msg, error) {
	m := mail.NewMsg()
	if e.FromName != "" {
		if err := m.FromFormat(e.FromName, s.cfg.From); err != nil {
			return nil, fmt.Errorf("invalid from address: %w", err)
		}
	} else if err := m.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(e.To); err != nil {
		return nil, fmt.Errorf("invalid to address: %w", err)
	}
	if e.ReplyTo != "" {
		if err := m.ReplyTo(e.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to address: %w", err)
		}
	}
	m.Subject(e.Subject)
	text := e.Text
	if text == "" {
		text = e.Subject
	}
	m.SetBodyString(mail.TypeTextPlain, text)
	if e.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, e.HTML)
	}
	return m, nil
}

func (s *SMTP) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
	}
	if s.cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	if s.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(s.cfg.Timeout))
	}
	return opts
}

// Send dials the relay per message. The transport timeout bounds the call
// even when ctx carries no deadline.
func (s *SMTP) Send(ctx context.Context, e Email) error {
	m, err := s.buildMsg(e)
	if err != nil {
		return err
	}
	c, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("smtp client init failed: %w", err)
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
