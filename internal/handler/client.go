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

type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	clients, err := h.clientService.Clients(profile.CompanyID)
	if err != nil {
		slog.Error("failed to list clients", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load clients")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"clients": clients})
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	client, err := h.clientService.ByID(profile.CompanyID, r.PathValue("id"))
	if errors.Is(err, repository.ErrClientNotFound) {
		httpjson.Error(w, http.StatusNotFound, "client not found")
		return
	}
	if err != nil {
		slog.Error("failed to load client", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load client")
		return
	}

	httpjson.Write(w, http.StatusOK, client)
}

func (h *ClientHandler) Save(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	var input service.ClientInput
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	client, err := h.clientService.Save(profile.CompanyID, input)
	switch {
	case errors.Is(err, service.ErrClientInvalid):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, repository.ErrClientNotFound):
		httpjson.Error(w, http.StatusNotFound, "client not found")
		return
	case err != nil:
		slog.Error("failed to save client", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to save client")
		return
	}

	status := http.StatusOK
	if input.ID == "" {
		status = http.StatusCreated
	}
	httpjson.Write(w, status, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	err := h.clientService.Delete(profile.CompanyID, r.PathValue("id"))
	if errors.Is(err, repository.ErrClientNotFound) {
		httpjson.Error(w, http.StatusNotFound, "client not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete client", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete client")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]bool{"deleted": true})
}
