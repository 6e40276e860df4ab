package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-project-marketplace/internal/container"
	handlers "github.com/oksasatya/go-project-marketplace/internal/interface/http"
	"github.com/oksasatya/go-project-marketplace/internal/interface/middleware"
	"github.com/oksasatya/go-project-marketplace/pkg/helpers"
)

type PurchaseModule struct {
	Handler *handlers.PurchaseHandler
	JWT     *helpers.JWTManager
}

func NewPurchaseModule(h *handlers.PurchaseHandler, jwt *helpers.JWTManager) *PurchaseModule {
	return &PurchaseModule{Handler: h, JWT: jwt}
}

func (m *PurchaseModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	auth := rg.Group("/purchases")
	auth.Use(middleware.Auth(rdb, m.JWT))
	{
		auth.POST("", middleware.RateLimit(rdb, 20, time.Minute, middleware.KeyByUserID(), nil), m.Handler.Purchase)
		auth.GET("", m.Handler.List)
	}
}
