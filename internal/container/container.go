package container

import (
	"database/sql"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-project-marketplace/config"
	"github.com/oksasatya/go-project-marketplace/internal/domain/gateway"
	"github.com/oksasatya/go-project-marketplace/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons. Optional collaborators
// (redis, storage, payments, publisher, es) may stay nil.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	db          *sql.DB
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	objectStorage gateway.ObjectStorage
	payments      gateway.PaymentGateway
	rabbitPub     *helpers.RabbitPublisher
	esClient      *elasticsearch.Client
)

func SetConfig(c *config.Config)           { cfg = c }
func GetConfig() *config.Config            { return cfg }
func SetLogger(l *logrus.Logger)           { logger = l }
func GetLogger() *logrus.Logger            { return logger }
func SetDB(d *sql.DB)                      { db = d }
func GetDB() *sql.DB                       { return db }
func SetRedis(r *redis.Client)             { redisClient = r }
func GetRedis() *redis.Client              { return redisClient }
func SetJWT(m *helpers.JWTManager)         { jwtManager = m }
func GetJWT() *helpers.JWTManager          { return jwtManager }
func SetStorage(s gateway.ObjectStorage)   { objectStorage = s }
func GetStorage() gateway.ObjectStorage    { return objectStorage }
func SetPayments(p gateway.PaymentGateway) { payments = p }
func GetPayments() gateway.PaymentGateway  { return payments }
func SetES(c *elasticsearch.Client)        { esClient = c }
func GetES() *elasticsearch.Client         { return esClient }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }

// GetPublisher returns the job publisher, or nil when RabbitMQ is not connected.
func GetPublisher() gateway.JobPublisher {
	if rabbitPub == nil {
		return nil
	}
	return rabbitPub
}
