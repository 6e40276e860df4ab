package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-project-marketplace/internal/domain/repository"
)

type PurchaseRepository struct {
	db *sql.DB
}

func NewPurchaseRepository(db *sql.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(ctx context.Context, p *entity.Purchase) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = entity.PurchasePending
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO purchases (id, project_id, buyer_id, amount_cents, currency, payment_intent_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (payment_intent_id) DO UPDATE SET status = purchases.status
		RETURNING id, created_at
	`, p.ID, p.ProjectID, p.BuyerID, p.AmountCents, p.Currency, p.PaymentIntentID, string(p.Status))
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepository) ListByBuyer(ctx context.Context, buyerID string) ([]entity.Purchase, error) {
	query, args, err := psql.Select(
		"id", "project_id", "buyer_id", "amount_cents", "currency", "payment_intent_id", "status", "created_at",
	).
		From("purchases").
		Where(sq.Eq{"buyer_id": buyerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build purchases query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]entity.Purchase, 0)
	for rows.Next() {
		var p entity.Purchase
		var status string
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.BuyerID, &p.AmountCents, &p.Currency,
			&p.PaymentIntentID, &status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		p.Status = entity.PurchaseStatus(status)
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ repository.PurchaseRepository = (*PurchaseRepository)(nil)
