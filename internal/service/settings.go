package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/repository"
	"github.com/freelancehub/freelancehub/internal/validation"
)

var ErrSettingsInvalid = errors.New("invalid settings")

type SettingsInput struct {
	EmailProvider string `json:"email_provider"`
	ResendAPIKey  string `json:"resend_api_key"`
	BrevoAPIKey   string `json:"brevo_api_key"`
	EmailFrom     string `json:"email_from"`
}

type SettingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// ForCompany returns the company's settings, creating the default row on
// first access so every company always has one.
func (s *SettingsService) ForCompany(companyID string) (*model.Settings, error) {
	settings, err := s.repo.ByCompanyID(companyID)
	if errors.Is(err, repository.ErrSettingsNotFound) {
		settings = &model.Settings{
			CompanyID:     companyID,
			EmailProvider: model.EmailProviderSystem,
		}
		if err := s.repo.Create(settings); err != nil {
			return nil, fmt.Errorf("failed to create default settings: %w", err)
		}
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// Update validates and persists the email dispatch configuration. A
// provider choice must come with its API key; keys left blank in the
// input keep their stored values so the form never has to echo secrets.
func (s *SettingsService) Update(companyID string, input SettingsInput) (*model.Settings, error) {
	settings, err := s.ForCompany(companyID)
	if err != nil {
		return nil, err
	}

	provider := strings.TrimSpace(input.EmailProvider)
	switch provider {
	case model.EmailProviderSystem, model.EmailProviderResend, model.EmailProviderBrevo:
	case "":
		provider = model.EmailProviderSystem
	default:
		return nil, fmt.Errorf("%w: unknown email provider %q", ErrSettingsInvalid, provider)
	}

	if key := strings.TrimSpace(input.ResendAPIKey); key != "" {
		settings.ResendAPIKey = &key
	}
	if key := strings.TrimSpace(input.BrevoAPIKey); key != "" {
		settings.BrevoAPIKey = &key
	}

	if provider == model.EmailProviderResend && (settings.ResendAPIKey == nil || *settings.ResendAPIKey == "") {
		return nil, fmt.Errorf("%w: resend provider requires an API key", ErrSettingsInvalid)
	}
	if provider == model.EmailProviderBrevo && (settings.BrevoAPIKey == nil || *settings.BrevoAPIKey == "") {
		return nil, fmt.Errorf("%w: brevo provider requires an API key", ErrSettingsInvalid)
	}
	settings.EmailProvider = provider

	if from := strings.TrimSpace(strings.ToLower(input.EmailFrom)); from != "" {
		if err := validation.ValidateEmail(from); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrSettingsInvalid, err)
		}
		settings.EmailFrom = &from
	} else {
		settings.EmailFrom = nil
	}

	if err := s.repo.Update(settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}
