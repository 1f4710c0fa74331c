package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/rishusinha26/portfolio-backend/internal/interface/http"
	"github.com/rishusinha26/portfolio-backend/internal/interface/middleware"
)

// ContactModule wires the contact form and the admin inbox
// Public: POST /api/contact
// Admin: GET /api/contact, PATCH /api/contact/:id/read, DELETE /api/contact/:id
type ContactModule struct {
	Handler *handlers.MessageHandler
	Gate    *middleware.AdminGate
	Redis   *redis.Client
}

func NewContactModule(h *handlers.MessageHandler, gate *middleware.AdminGate, rdb *redis.Client) *ContactModule {
	return &ContactModule{Handler: h, Gate: gate, Redis: rdb}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	submitLimiter := middleware.RateLimit(m.Redis, middleware.RateRule{
		Max:     5,
		Window:  time.Hour,
		Key:     middleware.KeyByIPAndPath(),
		Message: "Too many contact form submissions, please try again later.",
	})
	rg.POST("/contact", submitLimiter, m.Handler.Submit)

	admin := rg.Group("/contact", m.Gate.Admin()...)
	{
		admin.GET("", m.Handler.List)
		admin.PATCH("/:id/read", m.Handler.MarkRead)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
