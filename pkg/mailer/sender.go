package mailer

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by senders missing credentials.
var ErrNotConfigured = errors.New("email is not configured")

// Email is a single outbound message. HTML is preferred; Text is the fallback.
type Email struct {
	To       string
	ReplyTo  string
	FromName string
	Subject  string
	Text     string
	HTML     string
}

// Sender delivers an Email through a relay or managed provider.
type Sender interface {
	Send(ctx context.Context, e Email) error
	// Provider names the backend for logs and metrics.
	Provider() string
}
