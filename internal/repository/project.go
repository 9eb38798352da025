package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/freelancehub/freelancehub/internal/model"
)

var (
	ErrProjectNotFound = errors.New("project not found")
)

type ProjectRepository interface {
	Create(project *model.Project) error
	ByID(companyID, projectID string) (*model.Project, error)
	Projects(companyID string) ([]*model.Project, error)
	CountActive(companyID string) (int, error)
	Update(project *model.Project) error
	Delete(companyID, projectID string) error
}

type projectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *model.Project) error {
	query := `INSERT INTO projects (id, company_id, client_id, name, status, hourly_rate, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		project.ID,
		project.CompanyID,
		project.ClientID,
		project.Name,
		project.Status,
		project.HourlyRate,
		project.CreatedAt,
		project.UpdatedAt,
	)
	return err
}

func (r *projectRepository) ByID(companyID, projectID string) (*model.Project, error) {
	project := &model.Project{}
	err := r.db.Get(project, `SELECT * FROM projects WHERE id = $1 AND company_id = $2`, projectID, companyID)
	if err == sql.ErrNoRows {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepository) Projects(companyID string) ([]*model.Project, error) {
	var projects []*model.Project
	err := r.db.Select(&projects, `SELECT * FROM projects WHERE company_id = $1 ORDER BY updated_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) CountActive(companyID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM projects WHERE company_id = $1 AND status = $2`,
		companyID, model.ProjectStatusActive).Scan(&count)
	return count, err
}

func (r *projectRepository) Update(project *model.Project) error {
	query := `UPDATE projects
	          SET client_id = $1, name = $2, status = $3, hourly_rate = $4, updated_at = $5
	          WHERE id = $6 AND company_id = $7`

	result, err := r.db.Exec(query,
		project.ClientID,
		project.Name,
		project.Status,
		project.HourlyRate,
		time.Now(),
		project.ID,
		project.CompanyID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *projectRepository) Delete(companyID, projectID string) error {
	result, err := r.db.Exec(`DELETE FROM projects WHERE id = $1 AND company_id = $2`, projectID, companyID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProjectNotFound
	}
	return nil
}
