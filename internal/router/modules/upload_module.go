package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-project-marketplace/internal/container"
	handlers "github.com/oksasatya/go-project-marketplace/internal/interface/http"
	"github.com/oksasatya/go-project-marketplace/internal/interface/middleware"
	"github.com/oksasatya/go-project-marketplace/pkg/helpers"
)

type UploadModule struct {
	Handler *handlers.UploadHandler
	JWT     *helpers.JWTManager
}

func NewUploadModule(h *handlers.UploadHandler, jwt *helpers.JWTManager) *UploadModule {
	return &UploadModule{Handler: h, JWT: jwt}
}

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	rg.POST("/uploads",
		middleware.Auth(rdb, m.JWT),
		middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByUserID(), nil),
		m.Handler.Upload,
	)
}
