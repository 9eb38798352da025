package model

import "time"

type Client struct {
	ID        string    `db:"id" json:"id"`
	CompanyID string    `db:"company_id" json:"company_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ClientUser links an auth user to a client record, written by the
// client-invite flow so clients can sign in to their portal.
type ClientUser struct {
	ID        string    `db:"id"`
	ClientID  string    `db:"client_id"`
	UserID    string    `db:"user_id"`
	Email     string    `db:"email"`
	InvitedAt time.Time `db:"invited_at"`
}
