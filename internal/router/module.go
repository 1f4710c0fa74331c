package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that can register its routes on a RouterGroup
type Module interface {
	Register(rg *gin.RouterGroup)
}

// RootModule is implemented by modules that also mount routes outside /api
type RootModule interface {
	RegisterRoot(e *gin.Engine)
}
