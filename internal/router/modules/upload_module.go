package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/rishusinha26/portfolio-backend/internal/interface/http"
	"github.com/rishusinha26/portfolio-backend/internal/interface/middleware"
)

// UploadModule: admin-only POST/DELETE /api/upload
type UploadModule struct {
	Handler *handlers.UploadHandler
	Gate    *middleware.AdminGate
}

func NewUploadModule(h *handlers.UploadHandler, gate *middleware.AdminGate) *UploadModule {
	return &UploadModule{Handler: h, Gate: gate}
}

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/upload", m.Gate.Admin()...)
	g.POST("", m.Handler.Upload)
	g.DELETE("", m.Handler.Delete)
}
