package model

import "time"

// Company is the multi-tenant partition. Every business row (client,
// project, invoice, expense, ...) belongs to exactly one company.
type Company struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Currency  string    `db:"currency"`
	CreatedAt time.Time `db:"created_at"`
}
