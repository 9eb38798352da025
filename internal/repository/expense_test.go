package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/freelancehub/freelancehub/internal/model"
)

func newExpense(id string, date time.Time) *model.Expense {
	return &model.Expense{
		ID:        id,
		CompanyID: "company-1",
		Category:  "software",
		Amount:    29.99,
		Currency:  "USD",
		Date:      date,
		CreatedAt: date,
		UpdatedAt: date,
	}
}

func TestExpenseSince(t *testing.T) {
	database := setupTestDB(t)
	seedTenant(t, database)
	repo := NewExpenseRepository(database)

	cutoff := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	for _, e := range []*model.Expense{
		newExpense("old", cutoff.AddDate(0, -1, 0)),
		newExpense("boundary", cutoff),
		newExpense("recent", cutoff.AddDate(0, 0, 10)),
	} {
		if err := repo.Create(e); err != nil {
			t.Fatalf("Failed to create expense %s: %v", e.ID, err)
		}
	}

	expenses, err := repo.Since("company-1", cutoff)
	if err != nil {
		t.Fatalf("Failed to query expenses: %v", err)
	}
	if len(expenses) != 2 {
		t.Fatalf("expenses = %d, want 2 (boundary is inclusive)", len(expenses))
	}
	if expenses[0].ID != "boundary" || expenses[1].ID != "recent" {
		t.Errorf("order = %q, %q; want boundary, recent", expenses[0].ID, expenses[1].ID)
	}
}

func TestExpenseSetReceiptPath(t *testing.T) {
	database := setupTestDB(t)
	seedTenant(t, database)
	repo := NewExpenseRepository(database)

	date := time.Now().UTC()
	if err := repo.Create(newExpense("e1", date)); err != nil {
		t.Fatalf("Failed to create expense: %v", err)
	}

	if err := repo.SetReceiptPath("company-1", "e1", "receipts/company-1/e1.pdf"); err != nil {
		t.Fatalf("Failed to set receipt path: %v", err)
	}

	expense, err := repo.ByID("company-1", "e1")
	if err != nil {
		t.Fatalf("Failed to load expense: %v", err)
	}
	if expense.ReceiptPath == nil || *expense.ReceiptPath != "receipts/company-1/e1.pdf" {
		t.Errorf("receipt path = %v", expense.ReceiptPath)
	}

	err = repo.SetReceiptPath("company-2", "e1", "elsewhere.pdf")
	if !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("cross-company receipt update must fail, got %v", err)
	}
}

func TestExpenseDelete(t *testing.T) {
	database := setupTestDB(t)
	seedTenant(t, database)
	repo := NewExpenseRepository(database)

	date := time.Now().UTC()
	if err := repo.Create(newExpense("e1", date)); err != nil {
		t.Fatalf("Failed to create expense: %v", err)
	}

	if err := repo.Delete("company-1", "e1"); err != nil {
		t.Fatalf("Failed to delete expense: %v", err)
	}
	if _, err := repo.ByID("company-1", "e1"); !errors.Is(err, ErrExpenseNotFound) {
		t.Errorf("expected expense gone, got %v", err)
	}
	if err := repo.Delete("company-1", "e1"); !errors.Is(err, ErrExpenseNotFound) {
		t.Errorf("second delete must report not found, got %v", err)
	}
}
