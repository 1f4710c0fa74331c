package application

import (
	"context"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/internal/domain/repository"
)

const messageNotFound = "Message not found"

// MessageService serves the admin inbox.
type MessageService struct {
	Messages repository.MessageRepository
}

func NewMessageService(messages repository.MessageRepository) *MessageService {
	return &MessageService{Messages: messages}
}

// List returns every message, newest first.
func (s *MessageService) List(ctx context.Context) ([]entity.Message, error) {
	list, err := s.Messages.List(ctx)
	if err != nil {
		return nil, Persistence("Failed to fetch messages", err)
	}
	if list == nil {
		list = []entity.Message{}
	}
	return list, nil
}

// MarkRead sets the read flag. Marking an already-read message is a no-op.
func (s *MessageService) MarkRead(ctx context.Context, id string) (*entity.Message, error) {
	m, err := s.Messages.MarkRead(ctx, id)
	if err != nil {
		return nil, fromStore(err, messageNotFound, "Failed to update message")
	}
	return m, nil
}

func (s *MessageService) Delete(ctx context.Context, id string) error {
	return fromStore(s.Messages.Delete(ctx, id), messageNotFound, "Failed to delete message")
}
