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

var ErrQuotationInvalid = errors.New("invalid quotation")

// Quotations are simpler than invoices: draft -> sent, then the client
// either accepts or declines.
var quotationTransitions = map[string][]string{
	model.QuotationStatusDraft: {model.QuotationStatusSent},
	model.QuotationStatusSent:  {model.QuotationStatusAccepted, model.QuotationStatusDeclined},
}

type QuotationInput struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	Number     string    `json:"number"`
	Total      float64   `json:"total"`
	Currency   string    `json:"currency"`
	ValidUntil time.Time `json:"valid_until"`
	Notes      string    `json:"notes"`
}

type QuotationService struct {
	repo       repository.QuotationRepository
	clientRepo repository.ClientRepository
}

func NewQuotationService(repo repository.QuotationRepository, clientRepo repository.ClientRepository) *QuotationService {
	return &QuotationService{repo: repo, clientRepo: clientRepo}
}

func (s *QuotationService) Quotations(companyID string) ([]*model.Quotation, error) {
	quotations, err := s.repo.Quotations(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quotations: %w", err)
	}
	if quotations == nil {
		quotations = []*model.Quotation{}
	}
	return quotations, nil
}

func (s *QuotationService) ByID(companyID, quotationID string) (*model.Quotation, error) {
	return s.repo.ByID(companyID, quotationID)
}

func (s *QuotationService) Save(companyID string, input QuotationInput) (*model.Quotation, error) {
	number := strings.TrimSpace(input.Number)
	if number == "" {
		return nil, fmt.Errorf("%w: number is required", ErrQuotationInvalid)
	}
	if input.Total < 0 {
		return nil, fmt.Errorf("%w: total cannot be negative", ErrQuotationInvalid)
	}
	if input.ValidUntil.IsZero() {
		return nil, fmt.Errorf("%w: valid-until date is required", ErrQuotationInvalid)
	}

	clientID := strings.TrimSpace(input.ClientID)
	if clientID == "" {
		return nil, fmt.Errorf("%w: client is required", ErrQuotationInvalid)
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
	quotation := &model.Quotation{
		ID:         input.ID,
		CompanyID:  companyID,
		ClientID:   clientID,
		Number:     number,
		Status:     model.QuotationStatusDraft,
		Total:      input.Total,
		Currency:   currency,
		ValidUntil: input.ValidUntil,
		UpdatedAt:  now,
	}
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		quotation.Notes = &notes
	}

	if quotation.ID == "" {
		quotation.ID = uuid.New().String()
		quotation.CreatedAt = now

		err := s.repo.Create(quotation)
		if err != nil {
			return nil, fmt.Errorf("failed to create quotation: %w", err)
		}
		return quotation, nil
	}

	existing, err := s.repo.ByID(companyID, quotation.ID)
	if err != nil {
		return nil, err
	}
	if existing.Status != model.QuotationStatusDraft {
		return nil, fmt.Errorf("%w: only draft quotations can be edited", ErrInvalidTransition)
	}
	quotation.CreatedAt = existing.CreatedAt

	err = s.repo.Update(quotation)
	if err != nil {
		return nil, fmt.Errorf("failed to update quotation: %w", err)
	}
	return quotation, nil
}

func (s *QuotationService) Transition(companyID, quotationID, status string) (*model.Quotation, error) {
	quotation, err := s.repo.ByID(companyID, quotationID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range quotationTransitions[quotation.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, quotation.Status, status)
	}

	err = s.repo.SetStatus(companyID, quotationID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update quotation status: %w", err)
	}

	quotation.Status = status
	quotation.UpdatedAt = time.Now()
	return quotation, nil
}

func (s *QuotationService) Delete(companyID, quotationID string) error {
	return s.repo.Delete(companyID, quotationID)
}
