package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/freelancehub/freelancehub/internal/ctxkeys"
	"github.com/freelancehub/freelancehub/internal/handler/httpjson"
	"github.com/freelancehub/freelancehub/internal/repository"
	"github.com/freelancehub/freelancehub/internal/service"
	"github.com/freelancehub/freelancehub/internal/validation"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	expenses, err := h.expenseService.Expenses(profile.CompanyID)
	if err != nil {
		slog.Error("failed to list expenses", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"expenses": expenses})
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	expense, err := h.expenseService.ByID(profile.CompanyID, r.PathValue("id"))
	if errors.Is(err, repository.ErrExpenseNotFound) {
		httpjson.Error(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil {
		slog.Error("failed to load expense", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load expense")
		return
	}

	httpjson.Write(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) Save(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	var input service.ExpenseInput
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	expense, err := h.expenseService.Save(profile.CompanyID, input)
	switch {
	case errors.Is(err, service.ErrExpenseInvalid):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, repository.ErrExpenseNotFound):
		httpjson.Error(w, http.StatusNotFound, "expense not found")
		return
	case err != nil:
		slog.Error("failed to save expense", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to save expense")
		return
	}

	status := http.StatusOK
	if input.ID == "" {
		status = http.StatusCreated
	}
	httpjson.Write(w, status, expense)
}

// UploadReceipt takes a multipart form with a "receipt" file field.
func (h *ExpenseHandler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	if err := r.ParseMultipartForm(validation.MaxReceiptSize); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid upload")
		return
	}

	file, header, err := r.FormFile("receipt")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "receipt file is required")
		return
	}
	defer file.Close()

	expense, err := h.expenseService.AttachReceipt(profile.CompanyID, r.PathValue("id"), header.Filename, header.Size, file)
	switch {
	case errors.Is(err, service.ErrExpenseInvalid):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, repository.ErrExpenseNotFound):
		httpjson.Error(w, http.StatusNotFound, "expense not found")
		return
	case err != nil:
		slog.Error("failed to attach receipt", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to store receipt")
		return
	}

	httpjson.Write(w, http.StatusOK, expense)
}

// ReceiptURL returns a short-lived presigned URL for the receipt.
func (h *ExpenseHandler) ReceiptURL(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	url, err := h.expenseService.ReceiptURL(profile.CompanyID, r.PathValue("id"))
	switch {
	case errors.Is(err, service.ErrNoReceipt), errors.Is(err, repository.ErrExpenseNotFound):
		httpjson.Error(w, http.StatusNotFound, "receipt not found")
		return
	case err != nil:
		slog.Error("failed to presign receipt", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load receipt")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{"url": url})
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	err := h.expenseService.Delete(profile.CompanyID, r.PathValue("id"))
	if errors.Is(err, repository.ErrExpenseNotFound) {
		httpjson.Error(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete expense", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]bool{"deleted": true})
}
