package repository

import (
	"testing"
	"time"

	"github.com/freelancehub/freelancehub/internal/model"
)

func TestNotificationLatestOrderAndLimit(t *testing.T) {
	database := setupTestDB(t)
	seedTenant(t, database)
	repo := NewNotificationRepository(database)

	base := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := repo.Create(&model.Notification{
			ID:        string(rune('a' + i)),
			UserID:    "user-1",
			Type:      "timer_stopped",
			Title:     "Timer stopped",
			Message:   "",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Failed to create notification: %v", err)
		}
	}

	latest, err := repo.Latest("user-1", 3)
	if err != nil {
		t.Fatalf("Failed to query notifications: %v", err)
	}
	if len(latest) != 3 {
		t.Fatalf("latest = %d, want 3", len(latest))
	}
	if latest[0].ID != "e" || latest[1].ID != "d" || latest[2].ID != "c" {
		t.Errorf("order = %q, %q, %q; want e, d, c", latest[0].ID, latest[1].ID, latest[2].ID)
	}
}

func TestNotificationUnreadAndBatch(t *testing.T) {
	database := setupTestDB(t)
	seedTenant(t, database)
	repo := NewNotificationRepository(database)

	now := time.Now().UTC()
	for _, id := range []string{"n1", "n2", "n3"} {
		err := repo.Create(&model.Notification{
			ID:        id,
			UserID:    "user-1",
			Type:      "invoice_sent",
			Title:     "Invoice sent",
			CreatedAt: now,
		})
		if err != nil {
			t.Fatalf("Failed to create notification: %v", err)
		}
	}

	ids, err := repo.UnreadIDs("user-1")
	if err != nil {
		t.Fatalf("Failed to query unread ids: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("unread = %d, want 3", len(ids))
	}

	if err := repo.MarkRead("user-1", "n1"); err != nil {
		t.Fatalf("Failed to mark read: %v", err)
	}
	ids, err = repo.UnreadIDs("user-1")
	if err != nil {
		t.Fatalf("Failed to query unread ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("unread after single mark = %d, want 2", len(ids))
	}

	if err := repo.MarkReadBatch("user-1", ids); err != nil {
		t.Fatalf("Failed to mark batch: %v", err)
	}
	ids, err = repo.UnreadIDs("user-1")
	if err != nil {
		t.Fatalf("Failed to query unread ids: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("unread after batch = %d, want 0", len(ids))
	}
}

func TestNotificationMarkReadScopedToUser(t *testing.T) {
	database := setupTestDB(t)
	seedTenant(t, database)
	repo := NewNotificationRepository(database)

	err := repo.Create(&model.Notification{
		ID:     "n1",
		UserID: "user-1",
		Type:   "invoice_paid",
		Title:  "Invoice paid",
	})
	if err != nil {
		t.Fatalf("Failed to create notification: %v", err)
	}

	if err := repo.MarkRead("user-2", "n1"); err == nil {
		t.Fatal("another user must not mark the notification read")
	}

	ids, err := repo.UnreadIDs("user-1")
	if err != nil {
		t.Fatalf("Failed to query unread ids: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("unread = %d, want 1", len(ids))
	}
}
