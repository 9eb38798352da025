package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/freelancehub/freelancehub/internal/ctxkeys"
	"github.com/freelancehub/freelancehub/internal/handler/httpjson"
	"github.com/freelancehub/freelancehub/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// reportSince parses the optional ?since=YYYY-MM-DD bound, defaulting
// to the start of the current year.
func reportSince(r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("since")
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), true
	}
	since, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return since, true
}

func (h *ReportHandler) Time(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	since, ok := reportSince(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "invalid since date, expected YYYY-MM-DD")
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="time-report.csv"`)
		if err := h.reportService.WriteTimeCSV(w, profile.CompanyID, since); err != nil {
			slog.Error("failed to export time report", "error", err, "company_id", profile.CompanyID)
		}
		return
	}

	rows, err := h.reportService.TimeByProject(profile.CompanyID, since)
	if err != nil {
		slog.Error("failed to build time report", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"since": since, "projects": rows})
}

func (h *ReportHandler) Expenses(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	since, ok := reportSince(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "invalid since date, expected YYYY-MM-DD")
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="expense-report.csv"`)
		if err := h.reportService.WriteExpenseCSV(w, profile.CompanyID, since); err != nil {
			slog.Error("failed to export expense report", "error", err, "company_id", profile.CompanyID)
		}
		return
	}

	rows, err := h.reportService.ExpensesByCategory(profile.CompanyID, since)
	if err != nil {
		slog.Error("failed to build expense report", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"since": since, "categories": rows})
}
