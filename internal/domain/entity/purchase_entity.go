package entity

import "time"

type PurchaseStatus string

const (
	PurchasePending PurchaseStatus = "pending"
)

// Purchase records a payment intent issued for a buyer and a project.
type Purchase struct {
	ID              string         `json:"id"`
	ProjectID       string         `json:"project_id"`
	BuyerID         string         `json:"buyer_id"`
	AmountCents     int64          `json:"amount_cents"`
	Currency        string         `json:"currency"`
	PaymentIntentID string         `json:"payment_intent_id"`
	Status          PurchaseStatus `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
}
