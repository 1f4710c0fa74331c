package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/rishusinha26/portfolio-backend/internal/interface/http"
	"github.com/rishusinha26/portfolio-backend/internal/interface/middleware"
)

// ProjectModule: public reads and search, admin writes under /api/projects
type ProjectModule struct {
	Handler *handlers.ProjectHandler
	Gate    *middleware.AdminGate
}

func NewProjectModule(h *handlers.ProjectHandler, gate *middleware.AdminGate) *ProjectModule {
	return &ProjectModule{Handler: h, Gate: gate}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/projects")
	g.GET("", m.Handler.List)
	g.GET("/search", m.Handler.Search)
	g.GET("/:id", m.Handler.Get)

	admin := g.Group("", m.Gate.Admin()...)
	{
		admin.POST("", m.Handler.Create)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
