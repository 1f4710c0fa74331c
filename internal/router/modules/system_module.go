package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/rishusinha26/portfolio-backend/internal/interface/http"
)

// SystemModule serves the health check, the API index and the 404 fallback.
type SystemModule struct {
	Handler *handlers.SystemHandler
}

func NewSystemModule(h *handlers.SystemHandler) *SystemModule { return &SystemModule{Handler: h} }

func (m *SystemModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Handler.Health)
}

func (m *SystemModule) RegisterRoot(e *gin.Engine) {
	e.GET("/", m.Handler.Root)
	e.NoRoute(m.Handler.NoRoute)
}
