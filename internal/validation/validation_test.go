package validation

import (
	"strings"
	"testing"
	"time"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"dana@example.com",
		"dana+billing@example.co.uk",
		"d@e.io",
	}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) = %v, want nil", email, err)
		}
	}

	invalid := []string{
		"",
		"not-an-email",
		"@example.com",
		"dana@",
		strings.Repeat("a", 250) + "@e.com",
	}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) = nil, want error", email)
		}
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Studio North"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	if err := ValidateName("   "); err == nil {
		t.Error("whitespace-only name accepted")
	}
	if err := ValidateName(strings.Repeat("x", 101)); err == nil {
		t.Error("overlong name accepted")
	}
	if err := ValidateName(strings.Repeat("x", 100)); err != nil {
		t.Errorf("100-char name rejected: %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("correct-horse-battery"); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Error("short password accepted")
	}
	if err := ValidatePassword(strings.Repeat("x", 129)); err == nil {
		t.Error("overlong password accepted")
	}
	if err := ValidatePassword("password1234"); err == nil {
		t.Error("common password accepted")
	}
}

func TestValidateExpense(t *testing.T) {
	date := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	if err := ValidateExpense("software", 29.99, date); err != nil {
		t.Errorf("valid expense rejected: %v", err)
	}
	if err := ValidateExpense("", 29.99, date); err == nil {
		t.Error("missing category accepted")
	}
	if err := ValidateExpense("snacks", 29.99, date); err == nil {
		t.Error("unknown category accepted")
	}
	if err := ValidateExpense("software", 0, date); err == nil {
		t.Error("zero amount accepted")
	}
	if err := ValidateExpense("software", -5, date); err == nil {
		t.Error("negative amount accepted")
	}
	if err := ValidateExpense("software", 29.99, time.Time{}); err == nil {
		t.Error("missing date accepted")
	}
}

func TestValidateReceipt(t *testing.T) {
	if err := ValidateReceipt("receipt.pdf", 1024); err != nil {
		t.Errorf("valid receipt rejected: %v", err)
	}
	if err := ValidateReceipt("SCAN.JPG", 1024); err != nil {
		t.Errorf("uppercase extension rejected: %v", err)
	}
	if err := ValidateReceipt("receipt.pdf", 0); err == nil {
		t.Error("empty file accepted")
	}
	if err := ValidateReceipt("receipt.pdf", MaxReceiptSize+1); err == nil {
		t.Error("oversized file accepted")
	}
	if err := ValidateReceipt("receipt.exe", 1024); err == nil {
		t.Error("unsupported extension accepted")
	}
	if err := ValidateReceipt("noextension", 1024); err == nil {
		t.Error("missing extension accepted")
	}
}
