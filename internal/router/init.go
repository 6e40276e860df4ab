package router

import (
	"github.com/oksasatya/go-project-marketplace/internal/application"
	"github.com/oksasatya/go-project-marketplace/internal/container"
	"github.com/oksasatya/go-project-marketplace/internal/domain/gateway"
	pginfra "github.com/oksasatya/go-project-marketplace/internal/infrastructure/postgres"
	"github.com/oksasatya/go-project-marketplace/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-project-marketplace/internal/interface/http"
	"github.com/oksasatya/go-project-marketplace/internal/router/modules"
)

// Services groups the application services built from the container.
type Services struct {
	Users     *application.UserService
	Projects  *application.ProjectService
	Uploads   *application.UploadService
	Purchases *application.PurchaseService
}

func buildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetDB()

	userRepo := pginfra.NewUserRepository(db)
	projectRepo := pginfra.NewProjectRepository(db)
	purchaseRepo := pginfra.NewPurchaseRepository(db)

	var index gateway.ProjectIndex
	if es := container.GetES(); es != nil {
		index = search.NewProjectIndex(es, cfg.ESProjectsIndex, logger)
	}

	return Services{
		Users:    application.NewUserService(userRepo, container.GetJWT(), container.GetRedis(), logger, container.GetPublisher(), cfg),
		Projects: application.NewProjectService(projectRepo, index, logger),
		Uploads:  application.NewUploadService(container.GetStorage(), cfg.MaxUploadBytes, logger),
		Purchases: application.NewPurchaseService(projectRepo, purchaseRepo, container.GetPayments(),
			container.GetRedis(), container.GetPublisher(), logger, cfg),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()
	svc := buildServices()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Users, logger, cfg.CookieDomain, cfg.CookieSecure), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, logger), jwt))
	r.Add(modules.NewProjectModule(handlers.NewProjectHandler(svc.Projects, svc.Users, logger), jwt))
	r.Add(modules.NewUploadModule(handlers.NewUploadHandler(svc.Uploads, logger), jwt))
	r.Add(modules.NewPurchaseModule(handlers.NewPurchaseHandler(svc.Purchases, svc.Users, logger), jwt))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
