package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-project-marketplace/config"
	"github.com/oksasatya/go-project-marketplace/internal/container"
	"github.com/oksasatya/go-project-marketplace/pkg/helpers"
)

func setupContainer(debug bool) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	container.SetConfig(&config.Config{DebugMetricsEnabled: debug, MaxUploadBytes: 1024, Currency: "usd"})
	container.SetLogger(logger)
	container.SetJWT(helpers.NewJWTManager("a", "r", time.Minute, time.Hour))
}

func routeSet(r *gin.Engine) map[string]bool {
	out := map[string]bool{}
	for _, ri := range r.Routes() {
		out[ri.Method+" "+ri.Path] = true
	}
	return out
}

func TestInitModules_RegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupContainer(true)
	r := gin.New()
	reg := NewRegistry(r)
	InitModules(reg)
	reg.RegisterAll()

	routes := routeSet(r)
	for _, want := range []string{
		"POST /api/signup",
		"POST /api/login",
		"POST /api/refresh",
		"POST /api/logout",
		"GET /api/profile",
		"PUT /api/profile",
		"GET /api/projects",
		"GET /api/projects/search",
		"GET /api/projects/technologies",
		"GET /api/projects/:id",
		"POST /api/projects",
		"PUT /api/projects/:id",
		"DELETE /api/projects/:id",
		"POST /api/uploads",
		"POST /api/purchases",
		"GET /api/purchases",
		"GET /api/debug/vars",
	} {
		assert.True(t, routes[want], want)
	}
}

func TestInitModules_DebugDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupContainer(false)
	r := gin.New()
	reg := NewRegistry(r)
	InitModules(reg)
	reg.RegisterAll()

	assert.False(t, routeSet(r)["GET /api/debug/vars"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupContainer(false)
	r := gin.New()
	reg := NewRegistry(r)
	InitModules(reg)
	reg.RegisterAll()

	for _, path := range []string{"/api/projects", "/api/profile", "/api/purchases"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRegistry_HealthAndNoRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupContainer(false)
	r := gin.New()
	reg := NewRegistry(r)
	InitModules(reg)
	reg.RegisterAll()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "route not found")
}
