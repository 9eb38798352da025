package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/freelancehub/freelancehub/internal/ctxkeys"
	"github.com/freelancehub/freelancehub/internal/handler/httpjson"
	"github.com/freelancehub/freelancehub/internal/repository"
	"github.com/freelancehub/freelancehub/internal/service"
)

type QuotationHandler struct {
	quotationService *service.QuotationService
}

func NewQuotationHandler(quotationService *service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	quotations, err := h.quotationService.Quotations(profile.CompanyID)
	if err != nil {
		slog.Error("failed to list quotations", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load quotations")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"quotations": quotations})
}

func (h *QuotationHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	quotation, err := h.quotationService.ByID(profile.CompanyID, r.PathValue("id"))
	if errors.Is(err, repository.ErrQuotationNotFound) {
		httpjson.Error(w, http.StatusNotFound, "quotation not found")
		return
	}
	if err != nil {
		slog.Error("failed to load quotation", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load quotation")
		return
	}

	httpjson.Write(w, http.StatusOK, quotation)
}

func (h *QuotationHandler) Save(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	var input service.QuotationInput
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	quotation, err := h.quotationService.Save(profile.CompanyID, input)
	switch {
	case errors.Is(err, service.ErrQuotationInvalid), errors.Is(err, service.ErrInvalidTransition):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, repository.ErrClientNotFound):
		httpjson.Error(w, http.StatusBadRequest, "client not found")
		return
	case errors.Is(err, repository.ErrQuotationNotFound):
		httpjson.Error(w, http.StatusNotFound, "quotation not found")
		return
	case err != nil:
		slog.Error("failed to save quotation", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to save quotation")
		return
	}

	status := http.StatusOK
	if input.ID == "" {
		status = http.StatusCreated
	}
	httpjson.Write(w, status, quotation)
}

func (h *QuotationHandler) Transition(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	var req struct {
		Status string `json:"status"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	quotation, err := h.quotationService.Transition(profile.CompanyID, r.PathValue("id"), req.Status)
	switch {
	case errors.Is(err, service.ErrInvalidTransition):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, repository.ErrQuotationNotFound):
		httpjson.Error(w, http.StatusNotFound, "quotation not found")
		return
	case err != nil:
		slog.Error("failed to transition quotation", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to update quotation")
		return
	}

	httpjson.Write(w, http.StatusOK, quotation)
}

func (h *QuotationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	err := h.quotationService.Delete(profile.CompanyID, r.PathValue("id"))
	if errors.Is(err, repository.ErrQuotationNotFound) {
		httpjson.Error(w, http.StatusNotFound, "quotation not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete quotation", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete quotation")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]bool{"deleted": true})
}
