package validation

import (
	"errors"
	"time"

	"github.com/freelancehub/freelancehub/internal/model"
)

// ValidateExpense mirrors the form-level checks: category from the fixed
// set, positive amount, date present.
func ValidateExpense(category string, amount float64, date time.Time) error {
	if category == "" {
		return errors.New("category is required")
	}

	if !model.ValidExpenseCategory(category) {
		return errors.New("unknown expense category: " + category)
	}

	if amount <= 0 {
		return errors.New("amount must be greater than zero")
	}

	if date.IsZero() {
		return errors.New("date is required")
	}

	return nil
}
