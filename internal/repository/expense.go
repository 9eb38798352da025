package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/freelancehub/freelancehub/internal/model"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
)

type ExpenseRepository interface {
	Create(expense *model.Expense) error
	ByID(companyID, expenseID string) (*model.Expense, error)
	Expenses(companyID string) ([]*model.Expense, error)
	Since(companyID string, since time.Time) ([]*model.Expense, error)
	Update(expense *model.Expense) error
	SetFlags(companyID, expenseID string, billable, invoiced bool) error
	SetReceiptPath(companyID, expenseID, path string) error
	Delete(companyID, expenseID string) error
}

type expenseRepository struct {
	db *sqlx.DB
}

func NewExpenseRepository(db *sqlx.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(expense *model.Expense) error {
	query := `INSERT INTO expenses
	          (id, company_id, project_id, category, amount, currency, date, billable, invoiced, receipt_path, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(query,
		expense.ID,
		expense.CompanyID,
		expense.ProjectID,
		expense.Category,
		expense.Amount,
		expense.Currency,
		expense.Date,
		expense.Billable,
		expense.Invoiced,
		expense.ReceiptPath,
		expense.Notes,
		expense.CreatedAt,
		expense.UpdatedAt,
	)
	return err
}

func (r *expenseRepository) ByID(companyID, expenseID string) (*model.Expense, error) {
	expense := &model.Expense{}
	err := r.db.Get(expense, `SELECT * FROM expenses WHERE id = $1 AND company_id = $2`, expenseID, companyID)
	if err == sql.ErrNoRows {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func (r *expenseRepository) Expenses(companyID string) ([]*model.Expense, error) {
	var expenses []*model.Expense
	err := r.db.Select(&expenses, `SELECT * FROM expenses WHERE company_id = $1 ORDER BY date DESC`, companyID)
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepository) Since(companyID string, since time.Time) ([]*model.Expense, error) {
	var expenses []*model.Expense
	err := r.db.Select(&expenses,
		`SELECT * FROM expenses WHERE company_id = $1 AND date >= $2 ORDER BY date ASC`,
		companyID, since)
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepository) Update(expense *model.Expense) error {
	query := `UPDATE expenses
	          SET project_id = $1, category = $2, amount = $3, currency = $4, date = $5,
	              billable = $6, invoiced = $7, notes = $8, updated_at = $9
	          WHERE id = $10 AND company_id = $11`

	result, err := r.db.Exec(query,
		expense.ProjectID,
		expense.Category,
		expense.Amount,
		expense.Currency,
		expense.Date,
		expense.Billable,
		expense.Invoiced,
		expense.Notes,
		time.Now(),
		expense.ID,
		expense.CompanyID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (r *expenseRepository) SetFlags(companyID, expenseID string, billable, invoiced bool) error {
	result, err := r.db.Exec(`UPDATE expenses SET billable = $1, invoiced = $2, updated_at = $3 WHERE id = $4 AND company_id = $5`,
		billable, invoiced, time.Now(), expenseID, companyID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (r *expenseRepository) SetReceiptPath(companyID, expenseID, path string) error {
	result, err := r.db.Exec(`UPDATE expenses SET receipt_path = $1, updated_at = $2 WHERE id = $3 AND company_id = $4`,
		path, time.Now(), expenseID, companyID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (r *expenseRepository) Delete(companyID, expenseID string) error {
	result, err := r.db.Exec(`DELETE FROM expenses WHERE id = $1 AND company_id = $2`, expenseID, companyID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrExpenseNotFound
	}
	return nil
}
