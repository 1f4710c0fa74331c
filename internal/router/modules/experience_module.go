package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/rishusinha26/portfolio-backend/internal/interface/http"
	"github.com/rishusinha26/portfolio-backend/internal/interface/middleware"
)

type ExperienceModule struct {
	Handler *handlers.ExperienceHandler
	Gate    *middleware.AdminGate
}

func NewExperienceModule(h *handlers.ExperienceHandler, gate *middleware.AdminGate) *ExperienceModule {
	return &ExperienceModule{Handler: h, Gate: gate}
}

func (m *ExperienceModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/experiences")
	g.GET("", m.Handler.List)
	g.GET("/:id", m.Handler.Get)

	admin := g.Group("", m.Gate.Admin()...)
	{
		admin.POST("", m.Handler.Create)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
