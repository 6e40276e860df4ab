package repository

//go:generate mockgen -source=interfaces.go -destination=../../mock/repository_mock.go -package=mock

import (
	"context"

	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}

// ProjectScope narrows which projects List returns. An empty AuthorID means all.
type ProjectScope struct {
	AuthorID string
}

// ProjectRepository persists projects together with their attachments.
// Update and Delete only touch rows whose author matches p.Author.ID / authorID.
type ProjectRepository interface {
	List(ctx context.Context, scope ProjectScope) ([]entity.Project, error)
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	Create(ctx context.Context, p *entity.Project) error
	Update(ctx context.Context, p *entity.Project) error
	Delete(ctx context.Context, id, authorID string) error
}

// PurchaseRepository records issued payment intents.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	ListByBuyer(ctx context.Context, buyerID string) ([]entity.Purchase, error)
}
