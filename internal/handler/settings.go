package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/freelancehub/freelancehub/internal/ctxkeys"
	"github.com/freelancehub/freelancehub/internal/handler/httpjson"
	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// settingsResponse adds key-presence flags: the frontend needs to show
// whether a key is configured without ever seeing it.
type settingsResponse struct {
	*model.Settings
	HasResendKey bool `json:"has_resend_key"`
	HasBrevoKey  bool `json:"has_brevo_key"`
}

func newSettingsResponse(s *model.Settings) settingsResponse {
	return settingsResponse{
		Settings:     s,
		HasResendKey: s.ResendAPIKey != nil && *s.ResendAPIKey != "",
		HasBrevoKey:  s.BrevoAPIKey != nil && *s.BrevoAPIKey != "",
	}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	settings, err := h.settingsService.ForCompany(profile.CompanyID)
	if err != nil {
		slog.Error("failed to load settings", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	httpjson.Write(w, http.StatusOK, newSettingsResponse(settings))
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	var input service.SettingsInput
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	settings, err := h.settingsService.Update(profile.CompanyID, input)
	if errors.Is(err, service.ErrSettingsInvalid) {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to update settings", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	httpjson.Write(w, http.StatusOK, newSettingsResponse(settings))
}
