package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-project-marketplace/config"
	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-project-marketplace/internal/domain/gateway"
	repo "github.com/oksasatya/go-project-marketplace/internal/domain/repository"
	"github.com/oksasatya/go-project-marketplace/pkg/helpers"
	"github.com/oksasatya/go-project-marketplace/pkg/mailer"
	mailtpl "github.com/oksasatya/go-project-marketplace/pkg/mailer/templates"
)

// PurchaseService issues payment intents for projects. Redis and Pub are optional.
type PurchaseService struct {
	Projects  repo.ProjectRepository
	Purchases repo.PurchaseRepository
	Payments  gateway.PaymentGateway
	Redis     *redis.Client
	Pub       gateway.JobPublisher
	Logger    *logrus.Logger
	Cfg       *config.Config
}

func NewPurchaseService(projects repo.ProjectRepository, purchases repo.PurchaseRepository, payments gateway.PaymentGateway,
	rdb *redis.Client, pub gateway.JobPublisher, logger *logrus.Logger, cfg *config.Config) *PurchaseService {
	return &PurchaseService{
		Projects:  projects,
		Purchases: purchases,
		Payments:  payments,
		Redis:     rdb,
		Pub:       pub,
		Logger:    logger,
		Cfg:       cfg,
	}
}

// PurchaseResult is what the buyer needs to confirm the payment client side.
type PurchaseResult struct {
	PurchaseID   string `json:"purchase_id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

// AmountCents converts a decimal price to minor units, rounding half away from zero.
func AmountCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// Purchase creates (or reuses) the payment intent of buyer for projectID.
// buyerIP is only used to localise the notification to the author.
func (s *PurchaseService) Purchase(ctx context.Context, buyer entity.Author, projectID, buyerIP string) (PurchaseResult, error) {
	p, err := s.Projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return PurchaseResult{}, ErrProjectNotFound
		}
		return PurchaseResult{}, err
	}
	if p.Author.ID == buyer.ID {
		return PurchaseResult{}, ErrCannotBuyOwnProject
	}

	key := helpers.KeyPaymentIntent(buyer.ID, p.ID)
	if s.Redis != nil {
		var cached PurchaseResult
		if ok, cErr := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); cErr == nil && ok {
			return cached, nil
		} else if cErr != nil {
			s.Logger.WithError(cErr).WithField("key", key).Warn("intent cache read failed")
		}
	}

	if s.Payments == nil {
		return PurchaseResult{}, ErrPaymentUnavailable
	}
	amount := AmountCents(p.Price)
	currency := s.Cfg.Currency
	intent, err := s.Payments.CreateIntent(ctx, amount, currency, map[string]string{
		"project_id": p.ID,
		"user_id":    buyer.ID,
	})
	if err != nil {
		s.Logger.WithError(err).WithField("project_id", p.ID).Error("create payment intent failed")
		return PurchaseResult{}, fmt.Errorf("%w: %w", ErrPaymentUnavailable, err)
	}
	paymentIntentsCreated.Add(1)

	purchase := &entity.Purchase{
		ProjectID:       p.ID,
		BuyerID:         buyer.ID,
		AmountCents:     amount,
		Currency:        currency,
		PaymentIntentID: intent.ID,
		Status:          entity.PurchasePending,
	}
	if err := s.Purchases.Create(ctx, purchase); err != nil {
		return PurchaseResult{}, err
	}

	res := PurchaseResult{
		PurchaseID:   purchase.ID,
		ClientSecret: intent.ClientSecret,
		AmountCents:  amount,
		Currency:     currency,
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, res, s.Cfg.IntentCacheTTL); err != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("intent cache write failed")
		}
	}
	s.notifyAuthor(ctx, *p, buyer, res, buyerIP)
	return res, nil
}

func (s *PurchaseService) notifyAuthor(ctx context.Context, p entity.Project, buyer entity.Author, res PurchaseResult, buyerIP string) {
	if s.Pub == nil || !s.Cfg.MailSendEnabled || p.Author.Email == "" {
		return
	}
	data := mailtpl.NewProjectPurchasedData(s.Cfg, p.Author.Name, p.Author.Email,
		mailtpl.WithProject(p.ID, p.Title),
		mailtpl.WithBuyer(buyer.Name, buyer.Email),
		mailtpl.WithAmount(res.AmountCents, res.Currency),
		mailtpl.WithPurchasedAt(time.Now()),
		mailtpl.WithIP(buyerIP),
	)
	job := mailer.EmailJob{To: p.Author.Email, Template: mailtpl.ProjectPurchased, Data: data}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("project_id", p.ID).Warn("enqueue purchase email failed")
	}
}

// List returns the purchases made by buyerID, newest first.
func (s *PurchaseService) List(ctx context.Context, buyerID string) ([]entity.Purchase, error) {
	return s.Purchases.ListByBuyer(ctx, buyerID)
}
