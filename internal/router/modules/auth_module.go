package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-project-marketplace/internal/container"
	handlers "github.com/oksasatya/go-project-marketplace/internal/interface/http"
	"github.com/oksasatya/go-project-marketplace/internal/interface/middleware"
	"github.com/oksasatya/go-project-marketplace/pkg/helpers"
)

// AuthModule: public POST /api/signup, /api/login, /api/refresh;
// protected POST /api/logout.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	signupLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)   // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil) // 60 req/min per IP

	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
	}
}
