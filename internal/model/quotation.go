package model

import "time"

const (
	QuotationStatusDraft    = "draft"
	QuotationStatusSent     = "sent"
	QuotationStatusAccepted = "accepted"
	QuotationStatusDeclined = "declined"
)

type Quotation struct {
	ID         string    `db:"id" json:"id"`
	CompanyID  string    `db:"company_id" json:"company_id"`
	ClientID   string    `db:"client_id" json:"client_id"`
	Number     string    `db:"number" json:"number"`
	Status     string    `db:"status" json:"status"`
	Total      float64   `db:"total" json:"total"`
	Currency   string    `db:"currency" json:"currency"`
	ValidUntil time.Time `db:"valid_until" json:"valid_until"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
