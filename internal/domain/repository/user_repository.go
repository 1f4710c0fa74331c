package repository

import (
	"context"
	"time"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetBySubject(ctx context.Context, subjectID string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	UpdateRole(ctx context.Context, id string, role entity.Role) error
}
