package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Registry collects feature modules and mounts them on the engine.
// Middleware added with Use applies to the /api group only.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	Logger      logrus.FieldLogger
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine, logger logrus.FieldLogger) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api, Logger: logger}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll applies the /api middleware, then lets each module mount its
// routes. Modules implementing RootModule also get the bare engine.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
		if rm, ok := m.(RootModule); ok {
			rm.RegisterRoot(r.Engine)
		}
	}
	if r.Logger != nil {
		r.Logger.WithFields(logrus.Fields{
			"modules": len(r.modules),
			"routes":  len(r.Engine.Routes()),
		}).Debug("routes registered")
	}
}
