package service

import (
	"testing"
)

func TestNotificationFeedAndUnreadCount(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(repo)

	for i := 0; i < 3; i++ {
		_, err := svc.Notify("user-1", "timer_stopped", "Timer stopped", "Tracked 1h 30m")
		if err != nil {
			t.Fatalf("notify failed: %v", err)
		}
	}
	if _, err := svc.Notify("user-2", "invoice_sent", "Invoice sent", "2026-001"); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	feed, err := svc.Feed("user-1")
	if err != nil {
		t.Fatalf("feed failed: %v", err)
	}
	if len(feed.Notifications) != 3 {
		t.Errorf("feed length = %d, want 3", len(feed.Notifications))
	}
	if feed.UnreadCount != 3 {
		t.Errorf("unread = %d, want 3", feed.UnreadCount)
	}
	for _, n := range feed.Notifications {
		if n.UserID != "user-1" {
			t.Errorf("feed leaked notification for %q", n.UserID)
		}
	}
}

func TestNotificationMarkAllRead(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(repo)

	for i := 0; i < 4; i++ {
		if _, err := svc.Notify("user-1", "timer_stopped", "Timer stopped", ""); err != nil {
			t.Fatalf("notify failed: %v", err)
		}
	}

	count, err := svc.MarkAllRead("user-1")
	if err != nil {
		t.Fatalf("mark all read failed: %v", err)
	}
	if count != 4 {
		t.Errorf("marked = %d, want 4", count)
	}

	feed, err := svc.Feed("user-1")
	if err != nil {
		t.Fatalf("feed failed: %v", err)
	}
	if feed.UnreadCount != 0 {
		t.Errorf("unread after mark all = %d, want 0", feed.UnreadCount)
	}

	// Nothing left to mark.
	count, err = svc.MarkAllRead("user-1")
	if err != nil {
		t.Fatalf("second mark all read failed: %v", err)
	}
	if count != 0 {
		t.Errorf("second marked = %d, want 0", count)
	}
}

func TestNotificationSubscribeDelivers(t *testing.T) {
	svc := NewNotificationService(&stubNotificationRepo{})

	ch, cancel := svc.Subscribe("user-1")
	defer cancel()

	sent, err := svc.Notify("user-1", "invoice_paid", "Invoice paid", "2026-001")
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	select {
	case got := <-ch:
		if got.ID != sent.ID {
			t.Errorf("delivered %q, want %q", got.ID, sent.ID)
		}
	default:
		t.Fatal("notification was not delivered to subscriber")
	}
}

func TestNotificationSubscribeScopedToUser(t *testing.T) {
	svc := NewNotificationService(&stubNotificationRepo{})

	ch, cancel := svc.Subscribe("user-1")
	defer cancel()

	if _, err := svc.Notify("user-2", "invoice_paid", "Invoice paid", ""); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	select {
	case got := <-ch:
		t.Fatalf("user-1 received user-2's notification: %+v", got)
	default:
	}
}

func TestNotificationCancelStopsDelivery(t *testing.T) {
	svc := NewNotificationService(&stubNotificationRepo{})

	ch, cancel := svc.Subscribe("user-1")
	cancel()

	// Publishing after cancel must not panic on the closed channel.
	if _, err := svc.Notify("user-1", "invoice_paid", "Invoice paid", ""); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	if got, ok := <-ch; ok {
		t.Fatalf("received %+v on cancelled subscription", got)
	}
}

func TestNotificationSlowSubscriberDropsEvents(t *testing.T) {
	svc := NewNotificationService(&stubNotificationRepo{})

	ch, cancel := svc.Subscribe("user-1")
	defer cancel()

	// Overflow the buffer without draining; Notify must never block.
	for i := 0; i < 40; i++ {
		if _, err := svc.Notify("user-1", "timer_stopped", "Timer stopped", ""); err != nil {
			t.Fatalf("notify %d failed: %v", i, err)
		}
	}

	drained := 0
	for {
		select {
		case <-ch:
			drained++
			continue
		default:
		}
		break
	}
	if drained == 0 || drained > 16 {
		t.Errorf("drained %d events, want between 1 and the buffer size", drained)
	}
}
