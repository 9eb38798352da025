package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/freelancehub/freelancehub/internal/model"
)

var (
	ErrQuotationNotFound = errors.New("quotation not found")
)

type QuotationRepository interface {
	Create(quotation *model.Quotation) error
	ByID(companyID, quotationID string) (*model.Quotation, error)
	Quotations(companyID string) ([]*model.Quotation, error)
	Update(quotation *model.Quotation) error
	SetStatus(companyID, quotationID, status string) error
	Delete(companyID, quotationID string) error
}

type quotationRepository struct {
	db *sqlx.DB
}

func NewQuotationRepository(db *sqlx.DB) QuotationRepository {
	return &quotationRepository{db: db}
}

func (r *quotationRepository) Create(quotation *model.Quotation) error {
	query := `INSERT INTO quotations
	          (id, company_id, client_id, number, status, total, currency, valid_until, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		quotation.ID,
		quotation.CompanyID,
		quotation.ClientID,
		quotation.Number,
		quotation.Status,
		quotation.Total,
		quotation.Currency,
		quotation.ValidUntil,
		quotation.Notes,
		quotation.CreatedAt,
		quotation.UpdatedAt,
	)
	return err
}

func (r *quotationRepository) ByID(companyID, quotationID string) (*model.Quotation, error) {
	quotation := &model.Quotation{}
	err := r.db.Get(quotation, `SELECT * FROM quotations WHERE id = $1 AND company_id = $2`, quotationID, companyID)
	if err == sql.ErrNoRows {
		return nil, ErrQuotationNotFound
	}
	if err != nil {
		return nil, err
	}
	return quotation, nil
}

func (r *quotationRepository) Quotations(companyID string) ([]*model.Quotation, error) {
	var quotations []*model.Quotation
	err := r.db.Select(&quotations, `SELECT * FROM quotations WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	return quotations, nil
}

func (r *quotationRepository) Update(quotation *model.Quotation) error {
	query := `UPDATE quotations
	          SET client_id = $1, number = $2, status = $3, total = $4, currency = $5,
	              valid_until = $6, notes = $7, updated_at = $8
	          WHERE id = $9 AND company_id = $10`

	result, err := r.db.Exec(query,
		quotation.ClientID,
		quotation.Number,
		quotation.Status,
		quotation.Total,
		quotation.Currency,
		quotation.ValidUntil,
		quotation.Notes,
		time.Now(),
		quotation.ID,
		quotation.CompanyID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrQuotationNotFound
	}
	return nil
}

func (r *quotationRepository) SetStatus(companyID, quotationID, status string) error {
	result, err := r.db.Exec(`UPDATE quotations SET status = $1, updated_at = $2 WHERE id = $3 AND company_id = $4`,
		status, time.Now(), quotationID, companyID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrQuotationNotFound
	}
	return nil
}

func (r *quotationRepository) Delete(companyID, quotationID string) error {
	result, err := r.db.Exec(`DELETE FROM quotations WHERE id = $1 AND company_id = $2`, quotationID, companyID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrQuotationNotFound
	}
	return nil
}
