package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/internal/domain/repository"
)

const projectNotFound = "Project not found"

// ProjectIndex is the optional full-text mirror of the project collection.
type ProjectIndex interface {
	Put(ctx context.Context, p *entity.Project) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]string, error)
}

type ProjectService struct {
	Projects repository.ProjectRepository
	// Index is optional; writes keep it in sync on a best-effort basis.
	Index  ProjectIndex
	Logger logrus.FieldLogger
}

func NewProjectService(projects repository.ProjectRepository, logger logrus.FieldLogger) *ProjectService {
	return &ProjectService{Projects: projects, Logger: logger}
}

func validateProject(p *entity.Project) *Error {
	fields := map[string]string{}
	if strings.TrimSpace(p.Title) == "" {
		fields["title"] = "is required"
	}
	if strings.TrimSpace(p.Description) == "" {
		fields["description"] = "is required"
	}
	if len(fields) > 0 {
		return Validation("Title and description are required", fields)
	}
	return nil
}

func (s *ProjectService) List(ctx context.Context) ([]entity.Project, error) {
	list, err := s.Projects.List(ctx)
	if err != nil {
		return nil, Persistence("Failed to fetch projects", err)
	}
	if list == nil {
		list = []entity.Project{}
	}
	return list, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	p, err := s.Projects.Get(ctx, id)
	if err != nil {
		return nil, fromStore(err, projectNotFound, "Failed to fetch project")
	}
	return p, nil
}

func (s *ProjectService) Create(ctx context.Context, p *entity.Project) (*entity.Project, error) {
	p.Title = strings.TrimSpace(p.Title)
	if verr := validateProject(p); verr != nil {
		return nil, verr
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := s.Projects.Create(ctx, p); err != nil {
		return nil, Persistence("Failed to create project", err)
	}
	s.index(ctx, p)
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, patch entity.ProjectPatch) (*entity.Project, error) {
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		patch.Title = &t
	}
	probe := entity.Project{Title: "-", Description: "-"}
	patch.Apply(&probe)
	if verr := validateProject(&probe); verr != nil {
		return nil, verr
	}
	p, err := s.Projects.Update(ctx, id, patch)
	if err != nil {
		return nil, fromStore(err, projectNotFound, "Failed to update project")
	}
	s.index(ctx, p)
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.Projects.Delete(ctx, id); err != nil {
		return fromStore(err, projectNotFound, "Failed to delete project")
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("project_id", id).Warn("search index delete failed")
		}
	}
	return nil
}

// Search resolves index hits against the store, dropping stale ids.
func (s *ProjectService) Search(ctx context.Context, q string, size int) ([]entity.Project, error) {
	if s.Index == nil {
		return nil, newError(ErrUnavailable, "Project search is not configured", nil)
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, Validation("Search query required", map[string]string{"q": "is required"})
	}
	ids, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, newError(ErrUnavailable, "Project search failed", err)
	}
	out := make([]entity.Project, 0, len(ids))
	for _, id := range ids {
		p, err := s.Projects.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, Persistence("Failed to fetch projects", err)
		}
		out = append(out, *p)
	}
	return out, nil
}

// Reindex pushes every stored project into the search index.
func (s *ProjectService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, newError(ErrUnavailable, "Project search is not configured", nil)
	}
	list, err := s.Projects.List(ctx)
	if err != nil {
		return 0, Persistence("Failed to fetch projects", err)
	}
	for i := range list {
		if err := s.Index.Put(ctx, &list[i]); err != nil {
			return i, newError(ErrUnavailable, "Project indexing failed", err)
		}
	}
	return len(list), nil
}

func (s *ProjectService) index(ctx context.Context, p *entity.Project) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Put(ctx, p); err != nil {
		s.Logger.WithError(err).WithField("project_id", p.ID).Warn("search index update failed")
	}
}
