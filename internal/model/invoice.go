package model

import "time"

const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
)

type Invoice struct {
	ID          string    `db:"id" json:"id"`
	CompanyID   string    `db:"company_id" json:"company_id"`
	ClientID    string    `db:"client_id" json:"client_id"`
	Number      string    `db:"number" json:"number"`
	Status      string    `db:"status" json:"status"`
	Total       float64   `db:"total" json:"total"`
	Currency    string    `db:"currency" json:"currency"`
	DueDate     time.Time `db:"due_date" json:"due_date"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	PaymentLink *string   `db:"payment_link" json:"payment_link,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Unpaid reports whether the invoice still counts toward outstanding value.
func (i *Invoice) Unpaid() bool {
	return i.Status == InvoiceStatusDraft || i.Status == InvoiceStatusSent || i.Status == InvoiceStatusPartial
}

// Overdue is derived, never stored: only sent invoices past their due date.
func (i *Invoice) Overdue(now time.Time) bool {
	return i.Status == InvoiceStatusSent && i.DueDate.Before(now)
}
