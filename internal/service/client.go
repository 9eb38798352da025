package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/repository"
	"github.com/freelancehub/freelancehub/internal/validation"
)

var ErrClientInvalid = errors.New("invalid client")

type ClientInput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ClientService struct {
	repo repository.ClientRepository
}

func NewClientService(repo repository.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

func (s *ClientService) Clients(companyID string) ([]*model.Client, error) {
	clients, err := s.repo.Clients(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}
	if clients == nil {
		clients = []*model.Client{}
	}
	return clients, nil
}

func (s *ClientService) ByID(companyID, clientID string) (*model.Client, error) {
	return s.repo.ByID(companyID, clientID)
}

func (s *ClientService) Save(companyID string, input ClientInput) (*model.Client, error) {
	name := strings.TrimSpace(input.Name)
	if err := validation.ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrClientInvalid, err)
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrClientInvalid, err)
	}

	now := time.Now()
	client := &model.Client{
		ID:        input.ID,
		CompanyID: companyID,
		Name:      name,
		Email:     email,
		UpdatedAt: now,
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		client.Phone = &phone
	}

	if client.ID == "" {
		client.ID = uuid.New().String()
		client.CreatedAt = now

		err := s.repo.Create(client)
		if err != nil {
			return nil, fmt.Errorf("failed to create client: %w", err)
		}
		return client, nil
	}

	existing, err := s.repo.ByID(companyID, client.ID)
	if err != nil {
		return nil, err
	}
	client.CreatedAt = existing.CreatedAt

	err = s.repo.Update(client)
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *ClientService) Delete(companyID, clientID string) error {
	return s.repo.Delete(companyID, clientID)
}
