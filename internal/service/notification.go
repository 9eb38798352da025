package service

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/repository"
)

const notificationFeedLimit = 20

type NotificationFeed struct {
	Notifications []*model.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

// NotificationService persists notifications and fans new ones out to
// live subscribers. Each subscriber owns its channel; the service only
// ever does non-blocking sends, so a stalled stream drops events rather
// than wedging the publisher.
type NotificationService struct {
	repo repository.NotificationRepository

	mu   sync.Mutex
	subs map[string]map[chan *model.Notification]struct{}
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		repo: repo,
		subs: make(map[string]map[chan *model.Notification]struct{}),
	}
}

// Notify stores a notification and pushes it to the user's open streams.
func (s *NotificationService) Notify(userID, notificationType, title, message string) (*model.Notification, error) {
	notification := &model.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
	}

	err := s.repo.Create(notification)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.publish(notification)
	return notification, nil
}

func (s *NotificationService) Feed(userID string) (*NotificationFeed, error) {
	notifications, err := s.repo.Latest(userID, notificationFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}

	unread, err := s.repo.UnreadIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	if notifications == nil {
		notifications = []*model.Notification{}
	}
	return &NotificationFeed{
		Notifications: notifications,
		UnreadCount:   len(unread),
	}, nil
}

func (s *NotificationService) MarkRead(userID, notificationID string) error {
	return s.repo.MarkRead(userID, notificationID)
}

// MarkAllRead flips everything unread at call time in one batch. Rows
// created after the unread set was captured stay unread.
func (s *NotificationService) MarkAllRead(userID string) (int, error) {
	ids, err := s.repo.UnreadIDs(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list unread notifications: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err = s.repo.MarkReadBatch(userID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return len(ids), nil
}

// Subscribe registers a live stream for the user. The returned cancel
// func removes the subscription and closes the channel; it is safe to
// call exactly once, typically deferred by the streaming handler.
func (s *NotificationService) Subscribe(userID string) (<-chan *model.Notification, func()) {
	ch := make(chan *model.Notification, 16)

	s.mu.Lock()
	if s.subs[userID] == nil {
		s.subs[userID] = make(map[chan *model.Notification]struct{})
	}
	s.subs[userID][ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if set, ok := s.subs[userID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(s.subs, userID)
			}
		}
		s.mu.Unlock()
		close(ch)
	}
	return ch, cancel
}

func (s *NotificationService) publish(notification *model.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.subs[notification.UserID] {
		select {
		case ch <- notification:
		default:
		}
	}
}
