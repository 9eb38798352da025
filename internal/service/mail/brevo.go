package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const brevoSendURL = "https://api.brevo.com/v3/smtp/email"

// BrevoProvider sends through Brevo's transactional REST API.
type BrevoProvider struct {
	apiKey     string
	httpClient *http.Client
	sendURL    string
}

func NewBrevoProvider(apiKey string) *BrevoProvider {
	return &BrevoProvider{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		sendURL:    brevoSendURL,
	}
}

func (p *BrevoProvider) Name() string {
	return "brevo"
}

type brevoAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoSendRequest struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
	TextContent string         `json:"textContent,omitempty"`
}

func (p *BrevoProvider) Send(ctx context.Context, msg Message) error {
	payload := brevoSendRequest{
		Sender:      brevoAddress{Email: msg.From, Name: msg.FromName},
		To:          []brevoAddress{{Email: msg.To, Name: msg.ToName}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
		TextContent: msg.Text,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode brevo request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.sendURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build brevo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: brevo: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%w: brevo: status %d: %s", ErrProvider, resp.StatusCode, string(detail))
	}

	slog.Info("email sent", "provider", "brevo", "to", msg.To, "subject", msg.Subject)
	return nil
}
