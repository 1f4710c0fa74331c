package repository

import (
	"context"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
)

// MessageRepository persists contact submissions.
type MessageRepository interface {
	// Create assigns ID and timestamps on m.
	Create(ctx context.Context, m *entity.Message) error
	// List returns every message, newest first.
	List(ctx context.Context) ([]entity.Message, error)
	UpdateStatus(ctx context.Context, id string, status entity.MessageStatus) error
	MarkRead(ctx context.Context, id string) (*entity.Message, error)
	Delete(ctx context.Context, id string) error
}
