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

type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	invoices, err := h.invoiceService.Invoices(profile.CompanyID)
	if err != nil {
		slog.Error("failed to list invoices", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load invoices")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"invoices": invoices})
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	invoice, err := h.invoiceService.ByID(profile.CompanyID, r.PathValue("id"))
	if errors.Is(err, repository.ErrInvoiceNotFound) {
		httpjson.Error(w, http.StatusNotFound, "invoice not found")
		return
	}
	if err != nil {
		slog.Error("failed to load invoice", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load invoice")
		return
	}

	httpjson.Write(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) Save(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	var input service.InvoiceInput
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	invoice, err := h.invoiceService.Save(profile.CompanyID, input)
	switch {
	case errors.Is(err, service.ErrInvoiceInvalid), errors.Is(err, service.ErrInvalidTransition):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, service.ErrInvoiceNumberTaken):
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, repository.ErrClientNotFound):
		httpjson.Error(w, http.StatusBadRequest, "client not found")
		return
	case errors.Is(err, repository.ErrInvoiceNotFound):
		httpjson.Error(w, http.StatusNotFound, "invoice not found")
		return
	case err != nil:
		slog.Error("failed to save invoice", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to save invoice")
		return
	}

	status := http.StatusOK
	if input.ID == "" {
		status = http.StatusCreated
	}
	httpjson.Write(w, status, invoice)
}

// Transition moves an invoice through its lifecycle (sent, partial,
// paid). Sending with an email goes through the send-invoice function
// instead.
func (h *InvoiceHandler) Transition(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	var req struct {
		Status string `json:"status"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	invoice, err := h.invoiceService.Transition(profile.CompanyID, r.PathValue("id"), req.Status)
	switch {
	case errors.Is(err, service.ErrInvalidTransition):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, repository.ErrInvoiceNotFound):
		httpjson.Error(w, http.StatusNotFound, "invoice not found")
		return
	case err != nil:
		slog.Error("failed to transition invoice", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to update invoice")
		return
	}

	httpjson.Write(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	err := h.invoiceService.Delete(profile.CompanyID, r.PathValue("id"))
	switch {
	case errors.Is(err, service.ErrInvalidTransition):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, repository.ErrInvoiceNotFound):
		httpjson.Error(w, http.StatusNotFound, "invoice not found")
		return
	case err != nil:
		slog.Error("failed to delete invoice", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete invoice")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]bool{"deleted": true})
}
