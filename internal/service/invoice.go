package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/repository"
)

var (
	ErrInvoiceInvalid     = errors.New("invalid invoice")
	ErrInvoiceNumberTaken = errors.New("invoice number already in use")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// allowedTransitions is the invoice lifecycle: draft -> sent -> partial
// or paid, partial -> paid. Paid is terminal.
var allowedTransitions = map[string][]string{
	model.InvoiceStatusDraft:   {model.InvoiceStatusSent},
	model.InvoiceStatusSent:    {model.InvoiceStatusPartial, model.InvoiceStatusPaid},
	model.InvoiceStatusPartial: {model.InvoiceStatusPaid},
}

type InvoiceInput struct {
	ID       string    `json:"id"`
	ClientID string    `json:"client_id"`
	Number   string    `json:"number"`
	Total    float64   `json:"total"`
	Currency string    `json:"currency"`
	DueDate  time.Time `json:"due_date"`
	Notes    string    `json:"notes"`
}

type InvoiceService struct {
	repo       repository.InvoiceRepository
	clientRepo repository.ClientRepository
}

func NewInvoiceService(repo repository.InvoiceRepository, clientRepo repository.ClientRepository) *InvoiceService {
	return &InvoiceService{repo: repo, clientRepo: clientRepo}
}

func (s *InvoiceService) Invoices(companyID string) ([]*model.Invoice, error) {
	invoices, err := s.repo.Invoices(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	if invoices == nil {
		invoices = []*model.Invoice{}
	}
	return invoices, nil
}

func (s *InvoiceService) ByID(companyID, invoiceID string) (*model.Invoice, error) {
	return s.repo.ByID(companyID, invoiceID)
}

// Save creates or updates a draft. The number is unique per company;
// content edits after sending are not allowed, only status moves.
func (s *InvoiceService) Save(companyID string, input InvoiceInput) (*model.Invoice, error) {
	number := strings.TrimSpace(input.Number)
	if number == "" {
		return nil, fmt.Errorf("%w: number is required", ErrInvoiceInvalid)
	}
	if input.Total < 0 {
		return nil, fmt.Errorf("%w: total cannot be negative", ErrInvoiceInvalid)
	}
	if input.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", ErrInvoiceInvalid)
	}

	clientID := strings.TrimSpace(input.ClientID)
	if clientID == "" {
		return nil, fmt.Errorf("%w: client is required", ErrInvoiceInvalid)
	}
	_, err := s.clientRepo.ByID(companyID, clientID)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	invoice := &model.Invoice{
		ID:        input.ID,
		CompanyID: companyID,
		ClientID:  clientID,
		Number:    number,
		Status:    model.InvoiceStatusDraft,
		Total:     input.Total,
		Currency:  currency,
		DueDate:   input.DueDate,
		UpdatedAt: now,
	}
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		invoice.Notes = &notes
	}

	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
		invoice.CreatedAt = now

		err := s.repo.Create(invoice)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, ErrInvoiceNumberTaken
			}
			return nil, fmt.Errorf("failed to create invoice: %w", err)
		}
		return invoice, nil
	}

	existing, err := s.repo.ByID(companyID, invoice.ID)
	if err != nil {
		return nil, err
	}
	if existing.Status != model.InvoiceStatusDraft {
		return nil, fmt.Errorf("%w: only draft invoices can be edited", ErrInvalidTransition)
	}
	invoice.CreatedAt = existing.CreatedAt
	invoice.PaymentLink = existing.PaymentLink

	err = s.repo.Update(invoice)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrInvoiceNumberTaken
		}
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return invoice, nil
}

// Transition moves an invoice along the lifecycle, rejecting skips and
// reversals.
func (s *InvoiceService) Transition(companyID, invoiceID, status string) (*model.Invoice, error) {
	invoice, err := s.repo.ByID(companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(invoice.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, invoice.Status, status)
	}

	err = s.repo.SetStatus(companyID, invoiceID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}

	invoice.Status = status
	invoice.UpdatedAt = time.Now()
	return invoice, nil
}

// MarkPaid is the webhook entry point: idempotent, so replayed payment
// events after the first are no-ops.
func (s *InvoiceService) MarkPaid(companyID, invoiceID string) (*model.Invoice, error) {
	invoice, err := s.repo.ByID(companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == model.InvoiceStatusPaid {
		return invoice, nil
	}
	return s.Transition(companyID, invoiceID, model.InvoiceStatusPaid)
}

func (s *InvoiceService) Delete(companyID, invoiceID string) error {
	invoice, err := s.repo.ByID(companyID, invoiceID)
	if err != nil {
		return err
	}
	if invoice.Status != model.InvoiceStatusDraft {
		return fmt.Errorf("%w: only draft invoices can be deleted", ErrInvalidTransition)
	}
	return s.repo.Delete(companyID, invoiceID)
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
