package model

import "time"

// ExpenseCategories is the fixed set of accepted expense categories.
var ExpenseCategories = []string{
	"office",
	"travel",
	"software",
	"hardware",
	"marketing",
	"services",
	"other",
}

func ValidExpenseCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Expense struct {
	ID          string    `db:"id" json:"id"`
	CompanyID   string    `db:"company_id" json:"company_id"`
	ProjectID   *string   `db:"project_id" json:"project_id,omitempty"`
	Category    string    `db:"category" json:"category"`
	Amount      float64   `db:"amount" json:"amount"`
	Currency    string    `db:"currency" json:"currency"`
	Date        time.Time `db:"date" json:"date"`
	Billable    bool      `db:"billable" json:"billable"`
	Invoiced    bool      `db:"invoiced" json:"invoiced"`
	ReceiptPath *string   `db:"receipt_path" json:"-"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
