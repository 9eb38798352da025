package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/freelancehub/freelancehub/internal/ctxkeys"
	"github.com/freelancehub/freelancehub/internal/handler/httpjson"
	"github.com/freelancehub/freelancehub/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	activityService  *service.ActivityService
}

func NewDashboardHandler(dashboardService *service.DashboardService, activityService *service.ActivityService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		activityService:  activityService,
	}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	stats, err := h.dashboardService.Stats(r.Context(), profile.CompanyID)
	if errors.Is(err, service.ErrStatsUnavailable) {
		httpjson.Error(w, http.StatusServiceUnavailable, "dashboard is temporarily unavailable")
		return
	}
	if err != nil {
		slog.Error("failed to load dashboard stats", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	httpjson.Write(w, http.StatusOK, stats)
}

func (h *DashboardHandler) Activity(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	activities, err := h.activityService.Feed(profile.CompanyID)
	if err != nil {
		slog.Error("failed to load activity feed", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load activity")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"activities": activities})
}
