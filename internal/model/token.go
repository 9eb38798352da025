package model

import "time"

const (
	TokenTypeMagicLink    = "magic_link"
	TokenTypeClientInvite = "client_invite"
)

// Token is a single-use credential for magic links and client invites.
type Token struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Token     string    `db:"token"`
	Type      string    `db:"type"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (t *Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
