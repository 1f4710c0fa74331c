package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/rishusinha26/portfolio-backend/internal/interface/middleware"
	"github.com/rishusinha26/portfolio-backend/pkg/metrics"
)

// MetricsModule exposes the Prometheus scrape endpoint at /metrics.
type MetricsModule struct {
	Redis *redis.Client
}

func NewMetricsModule(rdb *redis.Client) *MetricsModule { return &MetricsModule{Redis: rdb} }

func (m *MetricsModule) Register(*gin.RouterGroup) {}

func (m *MetricsModule) RegisterRoot(e *gin.Engine) {
	// scrapers on the private network are not limited
	rl := middleware.RateLimit(m.Redis, middleware.RateRule{
		Max:    120,
		Window: time.Minute,
		Key:    middleware.KeyByIP("metrics"),
		Allow:  middleware.AllowPrivateIP(),
	})
	e.GET("/metrics", rl, gin.WrapH(metrics.Handler()))
}
