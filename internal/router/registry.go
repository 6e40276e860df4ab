package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-project-marketplace/pkg/response"
)

// Module is a feature that registers its routes under /api.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects modules and mounts them on the engine's /api group.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

// Use adds middleware applied to every module route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// RegisterAll mounts the health check, every module and a JSON 404 for
// unknown routes.
func (r *Registry) RegisterAll() {
	r.API.GET("/health", func(c *gin.Context) {
		response.SendSuccess[any](c, http.StatusOK, gin.H{"status": "ok"}, "healthy", nil)
	})
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
	r.Engine.NoRoute(func(c *gin.Context) {
		response.SendError(c, http.StatusNotFound, "route not found", nil)
	})
}
