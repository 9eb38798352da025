package mail

import (
	"context"
	"errors"
)

// ErrProvider wraps non-success responses from an email API. The wrapped
// message carries the provider-specific detail text.
var ErrProvider = errors.New("email provider error")

// Message is one outbound email with parallel HTML and plain-text bodies.
type Message struct {
	From     string
	FromName string
	To       string
	ToName   string
	Subject  string
	HTML     string
	Text     string
}

// Provider sends a single message. One attempt per dispatch; callers get
// the provider error as-is and decide what to surface. There is no
// automatic fallback to a second provider.
type Provider interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}
