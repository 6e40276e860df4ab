package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oksasatya/go-project-marketplace/config"
	"github.com/oksasatya/go-project-marketplace/internal/application"
	"github.com/oksasatya/go-project-marketplace/internal/container"
	"github.com/oksasatya/go-project-marketplace/internal/infrastructure/payment"
	pginfra "github.com/oksasatya/go-project-marketplace/internal/infrastructure/postgres"
	"github.com/oksasatya/go-project-marketplace/internal/infrastructure/search"
	"github.com/oksasatya/go-project-marketplace/internal/infrastructure/storage"
	"github.com/oksasatya/go-project-marketplace/internal/interface/middleware"
	"github.com/oksasatya/go-project-marketplace/internal/router"
	"github.com/oksasatya/go-project-marketplace/pkg/helpers"
	"github.com/oksasatya/go-project-marketplace/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Initialize Postgres pool
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	db := pginfra.OpenDB(pool)
	defer func() { _ = db.Close() }()

	// Run migrations using database/sql with pgx stdlib
	if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// Redis
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	// JWT
	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetDB(db)
	container.SetRedis(rdb)
	container.SetJWT(jwtManager)

	// Optional collaborators: the API keeps serving without them and the
	// affected endpoints answer 502 (or fall back, for search).
	if st, closeStorage, err := storage.New(ctx, cfg); err != nil {
		helpers.LogError(logger, "object storage disabled", err, logrus.Fields{"driver": cfg.StorageDriver})
	} else {
		container.SetStorage(st)
		defer func() { _ = closeStorage() }()
	}

	if cfg.StripeSecretKey != "" {
		container.SetPayments(payment.NewStripe(cfg.StripeSecretKey, nil))
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set; purchases disabled")
	}

	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogError(logger, "rabbitmq unavailable; emails will not be queued", err, nil)
		} else {
			container.SetRabbitPub(pub)
			defer pub.Close()
		}
	}

	if es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass); err != nil {
		helpers.LogError(logger, "elasticsearch client", err, nil)
	} else if es != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := helpers.PingES(pingCtx, es); err != nil {
			helpers.LogError(logger, "elasticsearch unreachable; search falls back to keyword filtering", err, nil)
		} else {
			container.SetES(es)
		}
		cancel()
	}
	if es := container.GetES(); es != nil && cfg.ESReindexOnStart {
		idx := search.NewProjectIndex(es, cfg.ESProjectsIndex, logger)
		projects := application.NewProjectService(pginfra.NewProjectRepository(db), idx, logger)
		go func() {
			n, err := projects.Reindex(context.Background())
			if err != nil {
				helpers.LogError(logger, "search index backfill incomplete", err, logrus.Fields{"indexed": n})
				return
			}
			logger.WithField("indexed", n).Info("search index backfilled")
		}()
	}

	// Gin engine and global middleware
	r := gin.New()
	if err := middleware.TrustProxies(r, cfg.TrustedProxyList(), cfg.TrustCloudflare); err != nil {
		log.Fatalf("trusted proxies: %v", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = []string{cfg.AppURL}
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	// Open sql DB via pgx stdlib
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
