package model

import "time"

const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)

type Project struct {
	ID         string    `db:"id" json:"id"`
	CompanyID  string    `db:"company_id" json:"company_id"`
	ClientID   *string   `db:"client_id" json:"client_id,omitempty"`
	Name       string    `db:"name" json:"name"`
	Status     string    `db:"status" json:"status"`
	HourlyRate float64   `db:"hourly_rate" json:"hourly_rate"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
