package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/freelancehub/freelancehub/internal/config"
	"github.com/freelancehub/freelancehub/internal/model"
)

var ErrPaymentsDisabled = errors.New("payments are not configured")

// PaymentService creates Stripe Checkout links for invoices and applies
// the completed-checkout webhook. Optional: without a Stripe key the
// invoice email simply goes out without a payment link.
type PaymentService struct {
	cfg      *config.Config
	invoices *InvoiceService
}

func NewPaymentService(cfg *config.Config, invoices *InvoiceService) *PaymentService {
	if cfg.StripeSecretKey != "" {
		stripe.Key = cfg.StripeSecretKey
	}
	return &PaymentService{cfg: cfg, invoices: invoices}
}

func (s *PaymentService) Enabled() bool {
	return s.cfg.StripeSecretKey != ""
}

// CheckoutLink creates a hosted checkout session for the invoice total.
// The invoice and company IDs travel in the session metadata and come
// back on the webhook.
func (s *PaymentService) CheckoutLink(invoice *model.Invoice, company *model.Company) (string, error) {
	if !s.Enabled() {
		return "", ErrPaymentsDisabled
	}

	base := strings.TrimSuffix(s.cfg.AppURL, "/")
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(strings.ToLower(invoice.Currency)),
				UnitAmount: stripe.Int64(int64(invoice.Total * 100)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(fmt.Sprintf("Invoice %s from %s", invoice.Number, company.Name)),
				},
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(base + "/pay/success"),
		CancelURL:  stripe.String(base + "/pay/cancelled"),
	}
	params.AddMetadata("invoice_id", invoice.ID)
	params.AddMetadata("company_id", invoice.CompanyID)

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess.URL, nil
}

// HandleWebhook verifies and applies a Stripe event. Completed checkouts
// mark the referenced invoice paid; everything else is acknowledged and
// ignored. MarkPaid is idempotent, so Stripe's retries are safe.
func (s *PaymentService) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.cfg.StripeWebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	if event.Type != "checkout.session.completed" {
		slog.Debug("ignoring stripe event", "type", event.Type)
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("failed to decode checkout session: %w", err)
	}

	invoiceID := sess.Metadata["invoice_id"]
	companyID := sess.Metadata["company_id"]
	if invoiceID == "" || companyID == "" {
		slog.Warn("checkout session without invoice metadata", "session", sess.ID)
		return nil
	}

	_, err = s.invoices.MarkPaid(companyID, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	slog.Info("invoice paid via stripe", "invoice_id", invoiceID, "company_id", companyID)
	return nil
}
