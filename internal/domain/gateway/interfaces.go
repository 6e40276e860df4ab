// Package gateway declares the third-party collaborators the application
// layer talks to: object storage, payments, search and the job queue.
package gateway

//go:generate mockgen -source=interfaces.go -destination=../../mock/gateway_mock.go -package=mock

import (
	"context"
	"io"

	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
)

// ObjectStorage stores a payload and returns a publicly resolvable URL.
type ObjectStorage interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// PaymentIntent is the opaque handle a client needs to confirm a payment.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentGateway creates payment intents with the payment provider.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (PaymentIntent, error)
}

// ProjectIndex keeps a full-text index of projects.
type ProjectIndex interface {
	Index(ctx context.Context, p entity.Project) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, query string, size int) ([]entity.Project, error)
}

// JobPublisher enqueues background jobs as JSON.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}
