package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/freelancehub/freelancehub/internal/model"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
)

type InvoiceRepository interface {
	Create(invoice *model.Invoice) error
	ByID(companyID, invoiceID string) (*model.Invoice, error)
	Invoices(companyID string) ([]*model.Invoice, error)
	Recent(companyID string, limit int) ([]*model.Invoice, error)
	Unpaid(companyID string) ([]*model.Invoice, error)
	PaidSince(companyID string, since time.Time) ([]*model.Invoice, error)
	Update(invoice *model.Invoice) error
	SetStatus(companyID, invoiceID, status string) error
	SetPaymentLink(companyID, invoiceID, link string) error
	Delete(companyID, invoiceID string) error
}

type invoiceRepository struct {
	db *sqlx.DB
}

func NewInvoiceRepository(db *sqlx.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(invoice *model.Invoice) error {
	query := `INSERT INTO invoices
	          (id, company_id, client_id, number, status, total, currency, due_date, notes, payment_link, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(query,
		invoice.ID,
		invoice.CompanyID,
		invoice.ClientID,
		invoice.Number,
		invoice.Status,
		invoice.Total,
		invoice.Currency,
		invoice.DueDate,
		invoice.Notes,
		invoice.PaymentLink,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)
	return err
}

func (r *invoiceRepository) ByID(companyID, invoiceID string) (*model.Invoice, error) {
	invoice := &model.Invoice{}
	err := r.db.Get(invoice, `SELECT * FROM invoices WHERE id = $1 AND company_id = $2`, invoiceID, companyID)
	if err == sql.ErrNoRows {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *invoiceRepository) Invoices(companyID string) ([]*model.Invoice, error) {
	var invoices []*model.Invoice
	err := r.db.Select(&invoices, `SELECT * FROM invoices WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) Recent(companyID string, limit int) ([]*model.Invoice, error) {
	var invoices []*model.Invoice
	err := r.db.Select(&invoices,
		`SELECT * FROM invoices WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2`,
		companyID, limit)
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) Unpaid(companyID string) ([]*model.Invoice, error) {
	var invoices []*model.Invoice
	query := `SELECT * FROM invoices
	          WHERE company_id = $1 AND status IN ('draft', 'sent', 'partial')
	          ORDER BY due_date ASC`

	err := r.db.Select(&invoices, query, companyID)
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) PaidSince(companyID string, since time.Time) ([]*model.Invoice, error) {
	var invoices []*model.Invoice
	query := `SELECT * FROM invoices
	          WHERE company_id = $1 AND status = 'paid' AND created_at >= $2
	          ORDER BY created_at ASC`

	err := r.db.Select(&invoices, query, companyID, since)
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) Update(invoice *model.Invoice) error {
	query := `UPDATE invoices
	          SET client_id = $1, number = $2, status = $3, total = $4, currency = $5,
	              due_date = $6, notes = $7, updated_at = $8
	          WHERE id = $9 AND company_id = $10`

	result, err := r.db.Exec(query,
		invoice.ClientID,
		invoice.Number,
		invoice.Status,
		invoice.Total,
		invoice.Currency,
		invoice.DueDate,
		invoice.Notes,
		time.Now(),
		invoice.ID,
		invoice.CompanyID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepository) SetStatus(companyID, invoiceID, status string) error {
	result, err := r.db.Exec(`UPDATE invoices SET status = $1, updated_at = $2 WHERE id = $3 AND company_id = $4`,
		status, time.Now(), invoiceID, companyID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepository) SetPaymentLink(companyID, invoiceID, link string) error {
	result, err := r.db.Exec(`UPDATE invoices SET payment_link = $1, updated_at = $2 WHERE id = $3 AND company_id = $4`,
		link, time.Now(), invoiceID, companyID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepository) Delete(companyID, invoiceID string) error {
	result, err := r.db.Exec(`DELETE FROM invoices WHERE id = $1 AND company_id = $2`, invoiceID, companyID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}
