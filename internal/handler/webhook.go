package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/freelancehub/freelancehub/internal/handler/httpjson"
	"github.com/freelancehub/freelancehub/internal/service"
)

const maxWebhookBody = 64 << 10 // Stripe recommends a bound on payload reads

type WebhookHandler struct {
	paymentService *service.PaymentService
}

func NewWebhookHandler(paymentService *service.PaymentService) *WebhookHandler {
	return &WebhookHandler{paymentService: paymentService}
}

// Stripe verifies delivery by status code only: 200 acknowledges, 400
// asks for a retry.
func (h *WebhookHandler) Stripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "failed to read payload")
		return
	}

	err = h.paymentService.HandleWebhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		slog.Error("stripe webhook failed", "error", err)
		httpjson.Error(w, http.StatusBadRequest, "webhook processing failed")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]bool{"received": true})
}
