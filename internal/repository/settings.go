package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/freelancehub/freelancehub/internal/model"
)

var (
	ErrSettingsNotFound = errors.New("settings not found")
)

type SettingsRepository interface {
	Create(settings *model.Settings) error
	ByCompanyID(companyID string) (*model.Settings, error)
	Update(settings *model.Settings) error
}

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Create(settings *model.Settings) error {
	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}
	if settings.EmailProvider == "" {
		settings.EmailProvider = model.EmailProviderSystem
	}
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = time.Now()
	}
	if settings.UpdatedAt.IsZero() {
		settings.UpdatedAt = time.Now()
	}

	query := `INSERT INTO settings (id, company_id, email_provider, resend_api_key, brevo_api_key, email_from, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		settings.ID,
		settings.CompanyID,
		settings.EmailProvider,
		settings.ResendAPIKey,
		settings.BrevoAPIKey,
		settings.EmailFrom,
		settings.CreatedAt,
		settings.UpdatedAt,
	)
	return err
}

func (r *settingsRepository) ByCompanyID(companyID string) (*model.Settings, error) {
	settings := &model.Settings{}
	err := r.db.Get(settings, `SELECT * FROM settings WHERE company_id = $1`, companyID)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingsRepository) Update(settings *model.Settings) error {
	query := `UPDATE settings
	          SET email_provider = $1, resend_api_key = $2, brevo_api_key = $3, email_from = $4, updated_at = $5
	          WHERE company_id = $6`

	result, err := r.db.Exec(query,
		settings.EmailProvider,
		settings.ResendAPIKey,
		settings.BrevoAPIKey,
		settings.EmailFrom,
		time.Now(),
		settings.CompanyID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSettingsNotFound
	}
	return nil
}
