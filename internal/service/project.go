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

var ErrProjectInvalid = errors.New("invalid project")

type ProjectInput struct {
	ID         string  `json:"id"`
	ClientID   string  `json:"client_id"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	HourlyRate float64 `json:"hourly_rate"`
}

type ProjectService struct {
	repo       repository.ProjectRepository
	clientRepo repository.ClientRepository
}

func NewProjectService(repo repository.ProjectRepository, clientRepo repository.ClientRepository) *ProjectService {
	return &ProjectService{repo: repo, clientRepo: clientRepo}
}

func (s *ProjectService) Projects(companyID string) ([]*model.Project, error) {
	projects, err := s.repo.Projects(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	return projects, nil
}

func (s *ProjectService) ByID(companyID, projectID string) (*model.Project, error) {
	return s.repo.ByID(companyID, projectID)
}

func (s *ProjectService) Save(companyID string, input ProjectInput) (*model.Project, error) {
	name := strings.TrimSpace(input.Name)
	if err := validation.ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectInvalid, err)
	}
	if input.HourlyRate < 0 {
		return nil, fmt.Errorf("%w: hourly rate cannot be negative", ErrProjectInvalid)
	}

	status := input.Status
	if status == "" {
		status = model.ProjectStatusActive
	}
	if status != model.ProjectStatusActive && status != model.ProjectStatusArchived {
		return nil, fmt.Errorf("%w: unknown status %q", ErrProjectInvalid, status)
	}

	now := time.Now()
	project := &model.Project{
		ID:         input.ID,
		CompanyID:  companyID,
		Name:       name,
		Status:     status,
		HourlyRate: input.HourlyRate,
		UpdatedAt:  now,
	}

	// The client link is optional but must resolve inside the company
	// when present.
	if clientID := strings.TrimSpace(input.ClientID); clientID != "" {
		_, err := s.clientRepo.ByID(companyID, clientID)
		if err != nil {
			return nil, err
		}
		project.ClientID = &clientID
	}

	if project.ID == "" {
		project.ID = uuid.New().String()
		project.CreatedAt = now

		err := s.repo.Create(project)
		if err != nil {
			return nil, fmt.Errorf("failed to create project: %w", err)
		}
		return project, nil
	}

	existing, err := s.repo.ByID(companyID, project.ID)
	if err != nil {
		return nil, err
	}
	project.CreatedAt = existing.CreatedAt

	err = s.repo.Update(project)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// Archive soft-retires a project so it stops counting as active without
// losing its tracked time.
func (s *ProjectService) Archive(companyID, projectID string) (*model.Project, error) {
	project, err := s.repo.ByID(companyID, projectID)
	if err != nil {
		return nil, err
	}

	project.Status = model.ProjectStatusArchived
	err = s.repo.Update(project)
	if err != nil {
		return nil, fmt.Errorf("failed to archive project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Delete(companyID, projectID string) error {
	return s.repo.Delete(companyID, projectID)
}
