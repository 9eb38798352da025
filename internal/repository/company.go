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
	ErrCompanyNotFound = errors.New("company not found")
)

type CompanyRepository interface {
	Create(company *model.Company) error
	ByID(id string) (*model.Company, error)
}

type companyRepository struct {
	db *sqlx.DB
}

func NewCompanyRepository(db *sqlx.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(company *model.Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	if company.CreatedAt.IsZero() {
		company.CreatedAt = time.Now()
	}
	if company.Currency == "" {
		company.Currency = "USD"
	}

	_, err := r.db.Exec(`INSERT INTO companies (id, name, currency, created_at)
	          VALUES ($1, $2, $3, $4)`,
		company.ID, company.Name, company.Currency, company.CreatedAt)
	return err
}

func (r *companyRepository) ByID(id string) (*model.Company, error) {
	company := &model.Company{}
	err := r.db.Get(company, `SELECT * FROM companies WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}
