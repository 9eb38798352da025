package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/freelancehub/freelancehub/internal/model"
)

// Factory resolves the provider to use for a company. Selection follows a
// fixed preference order: the company's configured provider with its own
// API key, then the system default. Once selected there is no fallback;
// a failing send surfaces to the caller.
type Factory struct {
	systemAPIKey string
	isDev        bool
}

func NewFactory(systemAPIKey string, isDev bool) *Factory {
	return &Factory{
		systemAPIKey: systemAPIKey,
		isDev:        isDev,
	}
}

// ForCompany picks the provider for the given company settings. A nil
// settings row selects the system default.
func (f *Factory) ForCompany(settings *model.Settings) (Provider, error) {
	if f.isDev {
		return &logProvider{}, nil
	}

	if settings != nil {
		switch settings.EmailProvider {
		case model.EmailProviderResend:
			if settings.ResendAPIKey != nil && *settings.ResendAPIKey != "" {
				return NewResendProvider(*settings.ResendAPIKey), nil
			}
			slog.Warn("company selected resend without an API key, using system default",
				"company_id", settings.CompanyID)
		case model.EmailProviderBrevo:
			if settings.BrevoAPIKey != nil && *settings.BrevoAPIKey != "" {
				return NewBrevoProvider(*settings.BrevoAPIKey), nil
			}
			slog.Warn("company selected brevo without an API key, using system default",
				"company_id", settings.CompanyID)
		}
	}

	if f.systemAPIKey == "" {
		return nil, fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}
	return NewResendProvider(f.systemAPIKey), nil
}

// logProvider logs instead of sending; development mode only.
type logProvider struct{}

func (p *logProvider) Name() string {
	return "log"
}

func (p *logProvider) Send(ctx context.Context, msg Message) error {
	slog.Info("email sent (dev mode)", "to", msg.To, "subject", msg.Subject)
	return nil
}
