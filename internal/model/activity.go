package model

import "time"

const (
	ActivityTimerStarted   = "timer_started"
	ActivityTimerStopped   = "timer_stopped"
	ActivityInvoiceCreated = "invoice_created"
	ActivityInvoiceSent    = "invoice_sent"
	ActivityInvoicePaid    = "invoice_paid"
)

// Activity is derived from time entries and invoices for the dashboard
// feed. It is never persisted; the feed is rebuilt on every load.
type Activity struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	SourceID    string    `json:"source_id"`
}
