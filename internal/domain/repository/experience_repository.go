package repository

import (
	"context"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
)

// ExperienceRepository persists timeline entries.
type ExperienceRepository interface {
	// List returns entries ordered by StartDate descending, then Order ascending.
	List(ctx context.Context, f entity.ExperienceFilter) ([]entity.Experience, error)
	Get(ctx context.Context, id string) (*entity.Experience, error)
	Create(ctx context.Context, e *entity.Experience) error
	Update(ctx context.Context, id string, patch entity.ExperiencePatch) (*entity.Experience, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}
