package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-project-marketplace/internal/container"
	handlers "github.com/oksasatya/go-project-marketplace/internal/interface/http"
	"github.com/oksasatya/go-project-marketplace/internal/interface/middleware"
	"github.com/oksasatya/go-project-marketplace/pkg/helpers"
)

// ProjectModule wires the project listing and its mutations. Every route
// requires an authenticated user.
type ProjectModule struct {
	Handler *handlers.ProjectHandler
	JWT     *helpers.JWTManager
}

func NewProjectModule(h *handlers.ProjectHandler, jwt *helpers.JWTManager) *ProjectModule {
	return &ProjectModule{Handler: h, JWT: jwt}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	projects := rg.Group("/projects")
	projects.Use(
		middleware.Auth(rdb, m.JWT),
		middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		projects.GET("", m.Handler.List)
		projects.GET("/search", m.Handler.Search)
		projects.GET("/technologies", m.Handler.Technologies)
		projects.GET("/:id", m.Handler.Get)
		projects.POST("", m.Handler.Create)
		projects.PUT("/:id", m.Handler.Update)
		projects.DELETE("/:id", m.Handler.Delete)
	}
}
