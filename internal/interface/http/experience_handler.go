package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rishusinha26/portfolio-backend/internal/application"
	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/pkg/helpers"
	"github.com/rishusinha26/portfolio-backend/pkg/response"
)

type ExperienceService interface {
	List(ctx context.Context, f entity.ExperienceFilter) ([]entity.Experience, error)
	Get(ctx context.Context, id string) (*entity.Experience, error)
	Create(ctx context.Context, e *entity.Experience) (*entity.Experience, error)
	Update(ctx context.Context, id string, patch entity.ExperiencePatch) (*entity.Experience, error)
	Delete(ctx context.Context, id string) error
}

type ExperienceHandler struct {
	Svc ExperienceService
}

func NewExperienceHandler(svc ExperienceService) *ExperienceHandler {
	return &ExperienceHandler{Svc: svc}
}

// experienceRequest takes dates as strings; an empty endDate clears it.
type experienceRequest struct {
	Type           *string   `json:"type" binding:"omitempty,experiencetype"`
	Title          *string   `json:"title" binding:"omitempty,max=200"`
	Organization   *string   `json:"organization" binding:"omitempty,max=200"`
	Location       *string   `json:"location" binding:"omitempty,max=200"`
	StartDate      *string   `json:"startDate"`
	EndDate        *string   `json:"endDate"`
	Current        *bool     `json:"current"`
	Description    *string   `json:"description" binding:"omitempty,max=5000"`
	Skills         *[]string `json:"skills" binding:"omitempty,max=50"`
	CertificateURL *string   `json:"certificateUrl" binding:"omitempty,max=1000"`
	Order          *int      `json:"order"`
}

func (r experienceRequest) patch() (entity.ExperiencePatch, error) {
	p := entity.ExperiencePatch{
		Title:          r.Title,
		Organization:   r.Organization,
		Location:       r.Location,
		Current:        r.Current,
		Description:    r.Description,
		Skills:         r.Skills,
		CertificateURL: r.CertificateURL,
		Order:          r.Order,
	}
	if r.Type != nil {
		t := entity.ExperienceType(strings.ToLower(strings.TrimSpace(*r.Type)))
		p.Type = &t
	}
	if r.StartDate != nil {
		t, err := helpers.ParseDate(*r.StartDate)
		if err != nil {
			return p, application.Validation("Invalid startDate", map[string]string{"startDate": "must be a date (YYYY-MM-DD or RFC3339)"})
		}
		p.StartDate = &t
	}
	if r.EndDate != nil {
		t, err := helpers.ParseOptionalDate(*r.EndDate)
		if err != nil {
			return p, application.Validation("Invalid endDate", map[string]string{"endDate": "must be a date (YYYY-MM-DD or RFC3339)"})
		}
		if t == nil {
			p.ClearEndDate = true
		} else {
			p.EndDate = t
		}
	}
	return p, nil
}

// List handles GET /api/experiences?type=.
func (h *ExperienceHandler) List(c *gin.Context) {
	f := entity.ExperienceFilter{Type: entity.ExperienceType(strings.ToLower(strings.TrimSpace(c.Query("type"))))}
	list, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err, "Failed to fetch experiences")
		return
	}
	response.Success(c, http.StatusOK, list, "", nil)
}

func (h *ExperienceHandler) Get(c *gin.Context) {
	e, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "Failed to fetch experience")
		return
	}
	response.Success(c, http.StatusOK, e, "", nil)
}

func (h *ExperienceHandler) Create(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	patch, err := req.patch()
	if err != nil {
		writeError(c, err, "Invalid experience")
		return
	}
	var e entity.Experience
	patch.Apply(&e)
	created, err := h.Svc.Create(c.Request.Context(), &e)
	if err != nil {
		writeError(c, err, "Failed to create experience")
		return
	}
	response.Success(c, http.StatusCreated, created, "", nil)
}

func (h *ExperienceHandler) Update(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	patch, err := req.patch()
	if err != nil {
		writeError(c, err, "Invalid experience")
		return
	}
	e, err := h.Svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, err, "Failed to update experience")
		return
	}
	response.Success(c, http.StatusOK, e, "", nil)
}

func (h *ExperienceHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "Failed to delete experience")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Experience deleted successfully", nil)
}

