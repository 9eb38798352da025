package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/freelancehub/freelancehub/internal/config"
	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/repository"
	"github.com/freelancehub/freelancehub/internal/service/mail"
)

var ErrInvoiceAlreadyPaid = errors.New("invoice is already paid")

// InvoiceMailer runs the send-invoice flow: resolve the recipient and
// the company's email provider, optionally attach a payment link, send,
// and flip a draft to sent only after the provider accepted the message.
type InvoiceMailer struct {
	cfg           *config.Config
	invoices      *InvoiceService
	payments      *PaymentService
	notifications *NotificationService
	clientRepo    repository.ClientRepository
	companyRepo   repository.CompanyRepository
	invoiceRepo   repository.InvoiceRepository
	settings      *SettingsService
	mailFactory   *mail.Factory
}

func NewInvoiceMailer(
	cfg *config.Config,
	invoices *InvoiceService,
	payments *PaymentService,
	notifications *NotificationService,
	clientRepo repository.ClientRepository,
	companyRepo repository.CompanyRepository,
	invoiceRepo repository.InvoiceRepository,
	settings *SettingsService,
	mailFactory *mail.Factory,
) *InvoiceMailer {
	return &InvoiceMailer{
		cfg:           cfg,
		invoices:      invoices,
		payments:      payments,
		notifications: notifications,
		clientRepo:    clientRepo,
		companyRepo:   companyRepo,
		invoiceRepo:   invoiceRepo,
		settings:      settings,
		mailFactory:   mailFactory,
	}
}

type SendInvoiceResult struct {
	InvoiceID   string `json:"invoice_id"`
	Status      string `json:"status"`
	SentTo      string `json:"sent_to"`
	Provider    string `json:"provider"`
	PaymentLink string `json:"payment_link,omitempty"`
}

func (m *InvoiceMailer) SendInvoiceEmail(ctx context.Context, companyID, invoiceID, actorUserID string) (*SendInvoiceResult, error) {
	invoice, err := m.invoices.ByID(companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == model.InvoiceStatusPaid {
		return nil, ErrInvoiceAlreadyPaid
	}

	client, err := m.clientRepo.ByID(companyID, invoice.ClientID)
	if err != nil {
		return nil, err
	}
	if client.Email == "" {
		return nil, ErrClientNoEmail
	}

	company, err := m.companyRepo.ByID(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	settings, err := m.settings.ForCompany(companyID)
	if err != nil {
		return nil, err
	}

	provider, err := m.mailFactory.ForCompany(settings)
	if err != nil {
		return nil, err
	}

	// Payment link is best effort: a Stripe failure downgrades the email
	// to link-less instead of blocking the send.
	paymentLink := ""
	if invoice.PaymentLink != nil {
		paymentLink = *invoice.PaymentLink
	}
	if paymentLink == "" && m.payments.Enabled() {
		paymentLink, err = m.payments.CheckoutLink(invoice, company)
		if err != nil {
			slog.Warn("failed to create payment link, sending without one",
				"error", err, "invoice_id", invoice.ID)
			paymentLink = ""
		} else if err := m.invoiceRepo.SetPaymentLink(companyID, invoice.ID, paymentLink); err != nil {
			return nil, fmt.Errorf("failed to store payment link: %w", err)
		}
	}

	notes := ""
	if invoice.Notes != nil {
		notes = *invoice.Notes
	}
	subject, html, text := mail.InvoiceEmail(mail.InvoiceEmailData{
		AppName:       m.cfg.AppName,
		CompanyName:   company.Name,
		RecipientName: client.Name,
		InvoiceNumber: invoice.Number,
		Amount:        invoice.Total,
		Currency:      invoice.Currency,
		DueDate:       invoice.DueDate,
		PaymentLink:   paymentLink,
		Notes:         notes,
	})

	from := m.cfg.EmailFrom
	if settings.EmailFrom != nil && *settings.EmailFrom != "" {
		from = *settings.EmailFrom
	}

	err = provider.Send(ctx, mail.Message{
		From:     from,
		FromName: company.Name,
		To:       client.Email,
		ToName:   client.Name,
		Subject:  subject,
		HTML:     html,
		Text:     text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send invoice email: %w", err)
	}

	status := invoice.Status
	if invoice.Status == model.InvoiceStatusDraft {
		updated, err := m.invoices.Transition(companyID, invoice.ID, model.InvoiceStatusSent)
		if err != nil {
			// The email went out; report the send and leave the status for
			// a manual retry.
			slog.Error("invoice sent but status update failed", "error", err, "invoice_id", invoice.ID)
		} else {
			status = updated.Status
		}
	}

	if actorUserID != "" {
		_, err := m.notifications.Notify(actorUserID, "invoice_sent",
			fmt.Sprintf("Invoice %s sent", invoice.Number),
			fmt.Sprintf("Invoice %s was emailed to %s.", invoice.Number, client.Email))
		if err != nil {
			slog.Warn("failed to create sent notification", "error", err)
		}
	}

	return &SendInvoiceResult{
		InvoiceID:   invoice.ID,
		Status:      status,
		SentTo:      client.Email,
		Provider:    provider.Name(),
		PaymentLink: paymentLink,
	}, nil
}
