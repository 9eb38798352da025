package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/freelancehub/freelancehub/internal/ctxkeys"
	"github.com/freelancehub/freelancehub/internal/handler/httpjson"
	"github.com/freelancehub/freelancehub/internal/repository"
	"github.com/freelancehub/freelancehub/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	feed, err := h.notificationService.Feed(user.ID)
	if err != nil {
		slog.Error("failed to load notifications", "error", err, "user_id", user.ID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load notifications")
		return
	}

	httpjson.Write(w, http.StatusOK, feed)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.notificationService.MarkRead(user.ID, r.PathValue("id"))
	if errors.Is(err, repository.ErrNotificationNotFound) {
		httpjson.Error(w, http.StatusNotFound, "notification not found")
		return
	}
	if err != nil {
		slog.Error("failed to mark notification read", "error", err, "user_id", user.ID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to update notification")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]bool{"read": true})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	count, err := h.notificationService.MarkAllRead(user.ID)
	if err != nil {
		slog.Error("failed to mark notifications read", "error", err, "user_id", user.ID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to update notifications")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]int{"marked_read": count})
}

// Stream delivers new notifications over SSE as they are created, with
// a periodic keepalive comment so proxies don't cut the idle stream.
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel := h.notificationService.Subscribe(user.ID)
	defer cancel()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case notification := <-events:
			if notification == nil {
				return
			}
			payload, err := json.Marshal(notification)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "event: notification\ndata: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
