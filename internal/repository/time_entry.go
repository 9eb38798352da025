package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/freelancehub/freelancehub/internal/model"
)

var (
	ErrTimeEntryNotFound = errors.New("time entry not found")
)

type TimeEntryRepository interface {
	Create(entry *model.TimeEntry) error
	ByID(userID, entryID string) (*model.TimeEntry, error)
	Running(userID string) (*model.TimeEntry, error)
	Stop(entryID string, endTime time.Time, durationSeconds int64) error
	Recent(companyID string, limit int) ([]*model.TimeEntry, error)
	Since(companyID string, since time.Time) ([]*model.TimeEntry, error)
	Delete(userID, entryID string) error
}

type timeEntryRepository struct {
	db *sqlx.DB
}

func NewTimeEntryRepository(db *sqlx.DB) TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

func (r *timeEntryRepository) Create(entry *model.TimeEntry) error {
	query := `INSERT INTO time_entries
	          (id, user_id, company_id, project_id, task, start_time, end_time, duration_seconds, running, billable, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.UserID,
		entry.CompanyID,
		entry.ProjectID,
		entry.Task,
		entry.StartTime,
		entry.EndTime,
		entry.DurationSeconds,
		entry.Running,
		entry.Billable,
		entry.CreatedAt,
	)
	return err
}

func (r *timeEntryRepository) ByID(userID, entryID string) (*model.TimeEntry, error) {
	entry := &model.TimeEntry{}
	err := r.db.Get(entry, `SELECT * FROM time_entries WHERE id = $1 AND user_id = $2`, entryID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrTimeEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Running returns the user's single running entry, or ErrTimeEntryNotFound
// when the user is idle. The partial unique index guarantees at most one row.
func (r *timeEntryRepository) Running(userID string) (*model.TimeEntry, error) {
	entry := &model.TimeEntry{}
	err := r.db.Get(entry, `SELECT * FROM time_entries WHERE user_id = $1 AND running`, userID)
	if err == sql.ErrNoRows {
		return nil, ErrTimeEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Stop closes a running entry. The WHERE running guard means a stop racing
// another stop affects zero rows instead of rewriting a closed entry.
func (r *timeEntryRepository) Stop(entryID string, endTime time.Time, durationSeconds int64) error {
	query := `UPDATE time_entries
	          SET end_time = $1, duration_seconds = $2, running = FALSE
	          WHERE id = $3 AND running`

	result, err := r.db.Exec(query, endTime, durationSeconds, entryID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTimeEntryNotFound
	}
	return nil
}

func (r *timeEntryRepository) Recent(companyID string, limit int) ([]*model.TimeEntry, error) {
	var entries []*model.TimeEntry
	query := `SELECT * FROM time_entries WHERE company_id = $1 ORDER BY start_time DESC LIMIT $2`

	err := r.db.Select(&entries, query, companyID, limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *timeEntryRepository) Since(companyID string, since time.Time) ([]*model.TimeEntry, error) {
	var entries []*model.TimeEntry
	query := `SELECT * FROM time_entries WHERE company_id = $1 AND start_time >= $2 ORDER BY start_time ASC`

	err := r.db.Select(&entries, query, companyID, since)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *timeEntryRepository) Delete(userID, entryID string) error {
	result, err := r.db.Exec(`DELETE FROM time_entries WHERE id = $1 AND user_id = $2 AND NOT running`, entryID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTimeEntryNotFound
	}
	return nil
}
