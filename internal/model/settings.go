package model

import "time"

const (
	EmailProviderSystem = "system"
	EmailProviderResend = "resend"
	EmailProviderBrevo  = "brevo"
)

// Settings holds per-company email dispatch configuration. An empty or
// "system" provider falls back to the platform Resend account.
type Settings struct {
	ID            string    `db:"id" json:"id"`
	CompanyID     string    `db:"company_id" json:"company_id"`
	EmailProvider string    `db:"email_provider" json:"email_provider"`
	ResendAPIKey  *string   `db:"resend_api_key" json:"-"`
	BrevoAPIKey   *string   `db:"brevo_api_key" json:"-"`
	EmailFrom     *string   `db:"email_from" json:"email_from,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
