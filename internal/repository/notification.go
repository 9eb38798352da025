package repository

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/freelancehub/freelancehub/internal/model"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	Latest(userID string, limit int) ([]*model.Notification, error)
	UnreadIDs(userID string) ([]string, error)
	MarkRead(userID, notificationID string) error
	MarkReadBatch(userID string, ids []string) error
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	query := `INSERT INTO notifications (id, user_id, type, title, message, read, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		notification.ID,
		notification.UserID,
		notification.Type,
		notification.Title,
		notification.Message,
		notification.Read,
		notification.CreatedAt,
	)
	return err
}

func (r *notificationRepository) Latest(userID string, limit int) ([]*model.Notification, error) {
	var notifications []*model.Notification
	query := `SELECT * FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	err := r.db.Select(&notifications, query, userID, limit)
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) UnreadIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Select(&ids, `SELECT id FROM notifications WHERE user_id = $1 AND NOT read`, userID)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *notificationRepository) MarkRead(userID, notificationID string) error {
	result, err := r.db.Exec(`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`,
		notificationID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkReadBatch flips the given ids in a single statement, matching the
// mark-all-as-read behavior of one batched update over the unread set.
func (r *notificationRepository) MarkReadBatch(userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+1)
	args = append(args, userID)
	for i, id := range ids {
		placeholders[i] = "$" + strconv.Itoa(i+2)
		args = append(args, id)
	}

	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND id IN (` +
		strings.Join(placeholders, ", ") + `)`

	_, err := r.db.Exec(query, args...)
	return err
}
