package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/freelancehub/freelancehub/internal/model"
)

var (
	ErrClientNotFound = errors.New("client not found")
)

type ClientRepository interface {
	Create(client *model.Client) error
	ByID(companyID, clientID string) (*model.Client, error)
	Clients(companyID string) ([]*model.Client, error)
	Count(companyID string) (int, error)
	Update(client *model.Client) error
	Delete(companyID, clientID string) error

	LinkUser(link *model.ClientUser) error
	LinkByClientAndUser(clientID, userID string) (*model.ClientUser, error)
}

type clientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(client *model.Client) error {
	query := `INSERT INTO clients (id, company_id, name, email, phone, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		client.ID,
		client.CompanyID,
		client.Name,
		client.Email,
		client.Phone,
		client.CreatedAt,
		client.UpdatedAt,
	)
	return err
}

func (r *clientRepository) ByID(companyID, clientID string) (*model.Client, error) {
	client := &model.Client{}
	err := r.db.Get(client, `SELECT * FROM clients WHERE id = $1 AND company_id = $2`, clientID, companyID)
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepository) Clients(companyID string) ([]*model.Client, error) {
	var clients []*model.Client
	err := r.db.Select(&clients, `SELECT * FROM clients WHERE company_id = $1 ORDER BY LOWER(name) ASC`, companyID)
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) Count(companyID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM clients WHERE company_id = $1`, companyID).Scan(&count)
	return count, err
}

func (r *clientRepository) Update(client *model.Client) error {
	query := `UPDATE clients
	          SET name = $1, email = $2, phone = $3, updated_at = $4
	          WHERE id = $5 AND company_id = $6`

	result, err := r.db.Exec(query,
		client.Name,
		client.Email,
		client.Phone,
		time.Now(),
		client.ID,
		client.CompanyID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) Delete(companyID, clientID string) error {
	result, err := r.db.Exec(`DELETE FROM clients WHERE id = $1 AND company_id = $2`, clientID, companyID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) LinkUser(link *model.ClientUser) error {
	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	if link.InvitedAt.IsZero() {
		link.InvitedAt = time.Now()
	}

	_, err := r.db.Exec(`INSERT INTO client_users (id, client_id, user_id, email, invited_at)
	          VALUES ($1, $2, $3, $4, $5)`,
		link.ID, link.ClientID, link.UserID, link.Email, link.InvitedAt)
	return err
}

func (r *clientRepository) LinkByClientAndUser(clientID, userID string) (*model.ClientUser, error) {
	link := &model.ClientUser{}
	err := r.db.Get(link, `SELECT * FROM client_users WHERE client_id = $1 AND user_id = $2`, clientID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}
