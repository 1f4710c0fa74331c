package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishusinha26/portfolio-backend/pkg/response"
)

type SystemHandler struct {
	Name    string
	Version string
}

func NewSystemHandler(name, version string) *SystemHandler {
	return &SystemHandler{Name: name, Version: version}
}

// Health handles GET /api/health.
func (h *SystemHandler) Health(c *gin.Context) {
	response.Success[any](c, http.StatusOK, nil, "Portfolio API is running", nil)
}

type rootInfo struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// Root handles GET / with a short index of the public API.
func (h *SystemHandler) Root(c *gin.Context) {
	response.Success(c, http.StatusOK, rootInfo{
		Name:    h.Name,
		Version: h.Version,
		Endpoints: map[string]string{
			"health":      "/api/health",
			"contact":     "/api/contact",
			"projects":    "/api/projects",
			"search":      "/api/projects/search?q=",
			"experiences": "/api/experiences",
			"upload":      "/api/upload",
		},
	}, "", nil)
}

// NoRoute renders the 404 for unmatched paths.
func (h *SystemHandler) NoRoute(c *gin.Context) {
	response.Error[any](c, http.StatusNotFound, "Route not found", gin.H{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	})
}
