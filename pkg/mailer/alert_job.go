package mailer

import "time"

// DeliveryAlert is the JSON payload put on the RabbitMQ queue when the
// operator notification for a contact message could not be delivered.
type DeliveryAlert struct {
	MessageID string    `json:"messageId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
	FailedAt  time.Time `json:"failedAt"`
}
