package application

import (
	"context"
	"strings"
	"time"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/internal/domain/repository"
)

const experienceNotFound = "Experience not found"

type ExperienceService struct {
	Experiences repository.ExperienceRepository
}

func NewExperienceService(experiences repository.ExperienceRepository) *ExperienceService {
	return &ExperienceService{Experiences: experiences}
}

func validateExperience(e *entity.Experience) *Error {
	fields := map[string]string{}
	if !e.Type.Valid() {
		fields["type"] = "must be one of: work, education, certification, hackathon"
	}
	if strings.TrimSpace(e.Title) == "" {
		fields["title"] = "is required"
	}
	if strings.TrimSpace(e.Organization) == "" {
		fields["organization"] = "is required"
	}
	if e.StartDate.IsZero() {
		fields["startDate"] = "is required"
	}
	if e.EndDate != nil && !e.StartDate.IsZero() && e.EndDate.Before(e.StartDate) {
		fields["endDate"] = "must not be before startDate"
	}
	if len(fields) > 0 {
		return Validation("Invalid experience", fields)
	}
	return nil
}

// List returns entries newest first, optionally restricted to one type.
func (s *ExperienceService) List(ctx context.Context, f entity.ExperienceFilter) ([]entity.Experience, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, Validation("Invalid experience type", map[string]string{"type": "must be one of: work, education, certification, hackathon"})
	}
	list, err := s.Experiences.List(ctx, f)
	if err != nil {
		return nil, Persistence("Failed to fetch experiences", err)
	}
	if list == nil {
		list = []entity.Experience{}
	}
	return list, nil
}

func (s *ExperienceService) Get(ctx context.Context, id string) (*entity.Experience, error) {
	e, err := s.Experiences.Get(ctx, id)
	if err != nil {
		return nil, fromStore(err, experienceNotFound, "Failed to fetch experience")
	}
	return e, nil
}

func (s *ExperienceService) Create(ctx context.Context, e *entity.Experience) (*entity.Experience, error) {
	if e.Current {
		e.EndDate = nil
	}
	if verr := validateExperience(e); verr != nil {
		return nil, verr
	}
	if e.Skills == nil {
		e.Skills = []string{}
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	if err := s.Experiences.Create(ctx, e); err != nil {
		return nil, Persistence("Failed to create experience", err)
	}
	return e, nil
}

// Update applies a partial patch. The merged entry is validated before writing.
func (s *ExperienceService) Update(ctx context.Context, id string, patch entity.ExperiencePatch) (*entity.Experience, error) {
	if patch.Current != nil && *patch.Current {
		patch.EndDate = nil
		patch.ClearEndDate = true
	}
	current, err := s.Experiences.Get(ctx, id)
	if err != nil {
		return nil, fromStore(err, experienceNotFound, "Failed to fetch experience")
	}
	merged := *current
	patch.Apply(&merged)
	if verr := validateExperience(&merged); verr != nil {
		return nil, verr
	}
	e, err := s.Experiences.Update(ctx, id, patch)
	if err != nil {
		return nil, fromStore(err, experienceNotFound, "Failed to update experience")
	}
	return e, nil
}

func (s *ExperienceService) Delete(ctx context.Context, id string) error {
	return fromStore(s.Experiences.Delete(ctx, id), experienceNotFound, "Failed to delete experience")
}
