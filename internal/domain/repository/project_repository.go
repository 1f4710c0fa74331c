package repository

import (
	"context"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
)

// ProjectRepository persists portfolio projects.
type ProjectRepository interface {
	// List returns projects ordered by Order ascending, then newest first.
	List(ctx context.Context) ([]entity.Project, error)
	Get(ctx context.Context, id string) (*entity.Project, error)
	Create(ctx context.Context, p *entity.Project) error
	Update(ctx context.Context, id string, patch entity.ProjectPatch) (*entity.Project, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}
