package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/pkg/response"
)

type ProjectService interface {
	List(ctx context.Context) ([]entity.Project, error)
	Get(ctx context.Context, id string) (*entity.Project, error)
	Create(ctx context.Context, p *entity.Project) (*entity.Project, error)
	Update(ctx context.Context, id string, patch entity.ProjectPatch) (*entity.Project, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]entity.Project, error)
}

type ProjectHandler struct {
	Svc ProjectService
}

func NewProjectHandler(svc ProjectService) *ProjectHandler {
	return &ProjectHandler{Svc: svc}
}

// projectRequest serves both create and partial update; absent fields are nil.
type projectRequest struct {
	Title       *string   `json:"title" binding:"omitempty,max=200"`
	Description *string   `json:"description" binding:"omitempty,max=5000"`
	TechStack   *[]string `json:"techStack" binding:"omitempty,max=50"`
	GithubURL   *string   `json:"githubUrl" binding:"omitempty,max=500"`
	LiveURL     *string   `json:"liveUrl" binding:"omitempty,max=500"`
	ImageURL    *string   `json:"imageUrl" binding:"omitempty,max=1000"`
	Featured    *bool     `json:"featured"`
	Order       *int      `json:"order"`
}

func (r projectRequest) patch() entity.ProjectPatch {
	return entity.ProjectPatch{
		Title:       r.Title,
		Description: r.Description,
		TechStack:   r.TechStack,
		GithubURL:   r.GithubURL,
		LiveURL:     r.LiveURL,
		ImageURL:    r.ImageURL,
		Featured:    r.Featured,
		Order:       r.Order,
	}
}

func (h *ProjectHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to fetch projects")
		return
	}
	response.Success(c, http.StatusOK, list, "", nil)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "Failed to fetch project")
		return
	}
	response.Success(c, http.StatusOK, p, "", nil)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	var p entity.Project
	req.patch().Apply(&p)
	created, err := h.Svc.Create(c.Request.Context(), &p)
	if err != nil {
		writeError(c, err, "Failed to create project")
		return
	}
	response.Success(c, http.StatusCreated, created, "", nil)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.patch())
	if err != nil {
		writeError(c, err, "Failed to update project")
		return
	}
	response.Success(c, http.StatusOK, p, "", nil)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "Failed to delete project")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Project deleted successfully", nil)
}

// Search handles GET /api/projects/search?q=&size=.
func (h *ProjectHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	list, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, err, "Project search failed")
		return
	}
	response.Success(c, http.StatusOK, list, "", map[string]any{"count": len(list)})
}
