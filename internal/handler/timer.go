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
	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/service"
)

type TimerHandler struct {
	timerService        *service.TimerService
	notificationService *service.NotificationService
}

func NewTimerHandler(timerService *service.TimerService, notificationService *service.NotificationService) *TimerHandler {
	return &TimerHandler{
		timerService:        timerService,
		notificationService: notificationService,
	}
}

type timerState struct {
	Running        bool             `json:"running"`
	Entry          *model.TimeEntry `json:"entry,omitempty"`
	ElapsedSeconds int64            `json:"elapsed_seconds"`
}

func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	profile := ctxkeys.Profile(r.Context())

	var req struct {
		ProjectID string `json:"project_id"`
		Task      string `json:"task"`
		Billable  bool   `json:"billable"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.timerService.Start(user.ID, profile.CompanyID, req.ProjectID, req.Task, req.Billable)
	switch {
	case errors.Is(err, service.ErrProjectRequired):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, service.ErrTimerAlreadyRunning):
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		slog.Error("failed to start timer", "error", err, "user_id", user.ID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to start timer")
		return
	}

	httpjson.Write(w, http.StatusCreated, timerState{Running: true, Entry: entry})
}

func (h *TimerHandler) Stop(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	entry, err := h.timerService.Stop(user.ID)
	if errors.Is(err, service.ErrTimerNotRunning) {
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to stop timer", "error", err, "user_id", user.ID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to stop timer")
		return
	}

	elapsed := int64(0)
	if entry.DurationSeconds != nil {
		elapsed = *entry.DurationSeconds
	}

	_, err = h.notificationService.Notify(user.ID, "timer_stopped",
		"Timer stopped",
		fmt.Sprintf("Tracked %s.", (time.Duration(elapsed)*time.Second).String()))
	if err != nil {
		slog.Warn("failed to create timer notification", "error", err)
	}

	httpjson.Write(w, http.StatusOK, timerState{Running: false, Entry: entry, ElapsedSeconds: elapsed})
}

// Current reports the timer state. An idle timer is a plain 200 with
// running=false, so reloads resume cleanly from whatever is stored.
func (h *TimerHandler) Current(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	entry, err := h.timerService.Running(user.ID)
	if err != nil {
		slog.Error("failed to load timer state", "error", err, "user_id", user.ID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load timer")
		return
	}

	state := timerState{}
	if entry != nil {
		state.Running = true
		state.Entry = entry
		state.ElapsedSeconds = int64(h.timerService.Elapsed(entry, time.Now()).Seconds())
	}
	httpjson.Write(w, http.StatusOK, state)
}

// Stream pushes the elapsed time once per second over SSE while a timer
// runs. The loop ends when the client disconnects; the request context
// tears everything down.
func (h *TimerHandler) Stream(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	writeState := func() bool {
		entry, err := h.timerService.Running(user.ID)
		if err != nil {
			slog.Error("timer stream query failed", "error", err, "user_id", user.ID)
			return false
		}

		state := timerState{}
		if entry != nil {
			state.Running = true
			state.Entry = entry
			state.ElapsedSeconds = int64(h.timerService.Elapsed(entry, time.Now()).Seconds())
		}

		payload, err := json.Marshal(state)
		if err != nil {
			return false
		}
		if _, err := fmt.Fprintf(w, "event: tick\ndata: %s\n\n", payload); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !writeState() {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if !writeState() {
				return
			}
		}
	}
}
