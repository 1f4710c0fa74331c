package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rishusinha26/portfolio-backend/internal/container"
	"github.com/rishusinha26/portfolio-backend/internal/interface/middleware"
	"github.com/rishusinha26/portfolio-backend/pkg/response"
)

// NewEngine builds the gin engine with the global middleware chain and every module registered.
func NewEngine(c *container.Container) *gin.Engine {
	cfg := c.Config

	r := gin.New()
	r.Use(gin.CustomRecovery(func(ctx *gin.Context, recovered any) {
		c.Logger.WithField("panic", recovered).Error("handler panic")
		response.Error[any](ctx, http.StatusInternalServerError, "Internal server error", nil)
	}))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP(cfg.TrustProxy))
	r.Use(middleware.SecurityHeaders(!cfg.IsDevelopment()))
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		// no browser origin configured: reject all cross-origin requests
		corsCfg.AllowOriginFunc = func(string) bool { return false }
	}
	r.Use(cors.New(corsCfg))
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics())
	}
	if cfg.HTTPLogEnabled || cfg.IsDevelopment() {
		r.Use(gin.Logger())
	}
	r.MaxMultipartMemory = 8 << 20

	reg := NewRegistry(r, c.Logger)
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}
