package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/repository"
	"github.com/freelancehub/freelancehub/internal/storage"
	"github.com/freelancehub/freelancehub/internal/validation"
)

var (
	ErrExpenseInvalid = errors.New("invalid expense")
	ErrNoReceipt      = errors.New("expense has no receipt")
)

// ExpenseInput is the write shape shared by create and update. An empty
// ID means create; a present ID updates the existing row.
type ExpenseInput struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Date      time.Time `json:"date"`
	Billable  bool      `json:"billable"`
	Invoiced  bool      `json:"invoiced"`
	Notes     string    `json:"notes"`
}

type ExpenseService struct {
	repo    repository.ExpenseRepository
	storage storage.Storage
}

func NewExpenseService(repo repository.ExpenseRepository, store storage.Storage) *ExpenseService {
	return &ExpenseService{repo: repo, storage: store}
}

func (s *ExpenseService) Expenses(companyID string) ([]*model.Expense, error) {
	expenses, err := s.repo.Expenses(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	if expenses == nil {
		expenses = []*model.Expense{}
	}
	return expenses, nil
}

func (s *ExpenseService) ByID(companyID, expenseID string) (*model.Expense, error) {
	return s.repo.ByID(companyID, expenseID)
}

// Save validates and upserts. Optional fields arrive as empty strings
// and are coerced to NULL so the row carries real absence, not "".
func (s *ExpenseService) Save(companyID string, input ExpenseInput) (*model.Expense, error) {
	if err := validation.ValidateExpense(input.Category, input.Amount, input.Date); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExpenseInvalid, err)
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	expense := &model.Expense{
		ID:        input.ID,
		CompanyID: companyID,
		Category:  input.Category,
		Amount:    input.Amount,
		Currency:  currency,
		Date:      input.Date,
		Billable:  input.Billable,
		Invoiced:  input.Invoiced,
		UpdatedAt: now,
	}
	if projectID := strings.TrimSpace(input.ProjectID); projectID != "" {
		expense.ProjectID = &projectID
	}
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		expense.Notes = &notes
	}

	if expense.ID == "" {
		expense.ID = uuid.New().String()
		expense.CreatedAt = now

		err := s.repo.Create(expense)
		if err != nil {
			return nil, fmt.Errorf("failed to create expense: %w", err)
		}
		return expense, nil
	}

	existing, err := s.repo.ByID(companyID, expense.ID)
	if err != nil {
		return nil, err
	}
	expense.CreatedAt = existing.CreatedAt
	expense.ReceiptPath = existing.ReceiptPath

	err = s.repo.Update(expense)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

func (s *ExpenseService) SetFlags(companyID, expenseID string, billable, invoiced bool) error {
	return s.repo.SetFlags(companyID, expenseID, billable, invoiced)
}

// AttachReceipt validates and stores an uploaded receipt, replacing any
// previous one for the expense. The stored path is opaque to callers;
// reads go through ReceiptURL.
func (s *ExpenseService) AttachReceipt(companyID, expenseID, filename string, size int64, file io.Reader) (*model.Expense, error) {
	expense, err := s.repo.ByID(companyID, expenseID)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateReceipt(filename, size); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExpenseInvalid, err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	path := fmt.Sprintf("receipts/%s/%s%s", companyID, expense.ID, ext)

	if err := s.storage.Save(path, file); err != nil {
		return nil, fmt.Errorf("failed to store receipt: %w", err)
	}

	if expense.ReceiptPath != nil && *expense.ReceiptPath != path {
		// Old object becomes an orphan at worst; the new upload already
		// succeeded.
		if err := s.storage.Delete(*expense.ReceiptPath); err != nil {
			slog.Warn("failed to delete replaced receipt", "error", err, "path", *expense.ReceiptPath)
		}
	}

	if err := s.repo.SetReceiptPath(companyID, expenseID, path); err != nil {
		return nil, fmt.Errorf("failed to record receipt path: %w", err)
	}

	expense.ReceiptPath = &path
	return expense, nil
}

// ReceiptURL returns a short-lived URL for the expense's receipt.
func (s *ExpenseService) ReceiptURL(companyID, expenseID string) (string, error) {
	expense, err := s.repo.ByID(companyID, expenseID)
	if err != nil {
		return "", err
	}
	if expense.ReceiptPath == nil || *expense.ReceiptPath == "" {
		return "", ErrNoReceipt
	}
	return s.storage.PresignedURL(*expense.ReceiptPath)
}

func (s *ExpenseService) Delete(companyID, expenseID string) error {
	expense, err := s.repo.ByID(companyID, expenseID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(companyID, expenseID); err != nil {
		return err
	}

	if expense.ReceiptPath != nil && *expense.ReceiptPath != "" {
		if err := s.storage.Delete(*expense.ReceiptPath); err != nil {
			return fmt.Errorf("expense deleted but receipt cleanup failed: %w", err)
		}
	}
	return nil
}
