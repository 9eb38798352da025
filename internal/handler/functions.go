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

// FunctionsHandler exposes the named server functions: send-invoice-email
// and invite-client. Both take a JSON body and answer with a JSON
// envelope. send-invoice-email maps expected failures to 400/404 and
// provider failures to 502; invite-client always answers 200 with a
// message or error field in the body.
type FunctionsHandler struct {
	invoiceMailer *service.InvoiceMailer
	inviteService *service.InviteService
}

func NewFunctionsHandler(invoiceMailer *service.InvoiceMailer, inviteService *service.InviteService) *FunctionsHandler {
	return &FunctionsHandler{
		invoiceMailer: invoiceMailer,
		inviteService: inviteService,
	}
}

func (h *FunctionsHandler) SendInvoiceEmail(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	profile := ctxkeys.Profile(r.Context())

	var req struct {
		InvoiceID string `json:"invoice_id"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.InvoiceID == "" {
		httpjson.Error(w, http.StatusBadRequest, "invoice_id is required")
		return
	}

	result, err := h.invoiceMailer.SendInvoiceEmail(r.Context(), profile.CompanyID, req.InvoiceID, user.ID)
	switch {
	case errors.Is(err, repository.ErrInvoiceNotFound):
		httpjson.Error(w, http.StatusNotFound, "invoice not found")
		return
	case errors.Is(err, service.ErrInvoiceAlreadyPaid),
		errors.Is(err, service.ErrClientNoEmail),
		errors.Is(err, repository.ErrClientNotFound):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("send-invoice-email failed", "error", err,
			"company_id", profile.CompanyID, "invoice_id", req.InvoiceID)
		httpjson.Error(w, http.StatusBadGateway, "failed to send invoice email")
		return
	}

	httpjson.Write(w, http.StatusOK, result)
}

type inviteResponse struct {
	Message string `json:"message"`
	*service.InviteResult
}

// InviteClient always answers 200; failures travel in the body's error
// field, never the status code.
func (h *FunctionsHandler) InviteClient(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	var req struct {
		ClientID string `json:"client_id"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Write(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}
	if req.ClientID == "" {
		httpjson.Write(w, http.StatusOK, map[string]string{"error": "client_id is required"})
		return
	}

	result, err := h.inviteService.InviteClient(r.Context(), profile.CompanyID, req.ClientID)
	switch {
	case errors.Is(err, repository.ErrClientNotFound):
		httpjson.Write(w, http.StatusOK, map[string]string{"error": "client not found"})
		return
	case errors.Is(err, service.ErrClientNoEmail):
		httpjson.Write(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	case err != nil:
		slog.Error("invite-client failed", "error", err,
			"company_id", profile.CompanyID, "client_id", req.ClientID)
		httpjson.Write(w, http.StatusOK, map[string]string{"error": "failed to send invite"})
		return
	}

	message := "invitation sent"
	if result.Resent {
		message = "invitation resent"
	}
	httpjson.Write(w, http.StatusOK, inviteResponse{Message: message, InviteResult: result})
}
