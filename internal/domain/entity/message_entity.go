package entity

import "time"

// MessageStatus tracks the outcome of the operator notification
type MessageStatus string

const (
	StatusPending     MessageStatus = "pending"
	StatusCompleted   MessageStatus = "completed"
	StatusEmailFailed MessageStatus = "email_failed"
)

// Terminal reports whether s is a post-notification status
func (s MessageStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusEmailFailed
}

// DefaultSubject is stored when a submission omits its subject
const DefaultSubject = "Portfolio Contact"

// Message is a contact-form submission
type Message struct {
	ID        string        `json:"_id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Body      string        `json:"message"`
	Read      bool          `json:"read"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
