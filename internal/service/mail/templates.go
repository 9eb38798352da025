package mail

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/yuin/goldmark"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// InvoiceEmailData carries the typed fields rendered into the invoice
// email. Notes are markdown and get rendered to HTML for the HTML body.
type InvoiceEmailData struct {
	AppName       string
	CompanyName   string
	RecipientName string
	InvoiceNumber string
	Amount        float64
	Currency      string
	DueDate       time.Time
	PaymentLink   string
	Notes         string
}

// ClientInviteData carries the fields for the client portal invitation.
type ClientInviteData struct {
	AppName     string
	CompanyName string
	ClientName  string
	InviteURL   string
	IsResend    bool
}

var notesMarkdown = goldmark.New()

// FormatAmount renders an amount with its currency symbol, falling back
// to a plain "12.34 XYZ" rendering for unknown codes.
func FormatAmount(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%.2f %s", amount, code)
	}

	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", currency.Symbol(unit.Amount(amount)))
}

func renderNotes(notes string) string {
	if notes == "" {
		return ""
	}

	var buf bytes.Buffer
	err := notesMarkdown.Convert([]byte(notes), &buf)
	if err != nil {
		slog.Warn("failed to render notes markdown, sending as plain text", "error", err)
		return "<p>" + notes + "</p>"
	}
	return buf.String()
}

// InvoiceEmail renders the fixed HTML document and the parallel plain-text
// document for an outbound invoice.
func InvoiceEmail(data InvoiceEmailData) (subject, html, text string) {
	subject = fmt.Sprintf("Invoice %s from %s", data.InvoiceNumber, data.CompanyName)

	amount := FormatAmount(data.Amount, data.Currency)
	due := data.DueDate.Format("Jan 2, 2006")

	linkHTML := ""
	linkText := ""
	if data.PaymentLink != "" {
		linkHTML = fmt.Sprintf(`<p><a href="%s" style="display:inline-block;padding:12px 24px;background:#111;color:#fff;text-decoration:none;border-radius:6px;">Pay invoice</a></p>`, data.PaymentLink)
		linkText = fmt.Sprintf("\nPay online: %s\n", data.PaymentLink)
	}

	notesHTML := ""
	notesText := ""
	if data.Notes != "" {
		notesHTML = fmt.Sprintf(`<hr style="border:none;border-top:1px solid #eee;margin:24px 0;">%s`, renderNotes(data.Notes))
		notesText = fmt.Sprintf("\n---\n%s\n", data.Notes)
	}

	html = fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;color:#222;max-width:560px;margin:0 auto;padding:24px;">
<h2>Invoice %s</h2>
<p>Hi %s,</p>
<p>%s has sent you an invoice.</p>
<table style="width:100%%;border-collapse:collapse;margin:16px 0;">
<tr><td style="padding:8px 0;color:#666;">Amount due</td><td style="padding:8px 0;text-align:right;font-weight:bold;">%s</td></tr>
<tr><td style="padding:8px 0;color:#666;">Due date</td><td style="padding:8px 0;text-align:right;">%s</td></tr>
</table>
%s%s
<p style="color:#999;font-size:12px;">Sent via %s</p>
</body>
</html>`, data.InvoiceNumber, data.RecipientName, data.CompanyName, amount, due, linkHTML, notesHTML, data.AppName)

	text = fmt.Sprintf(`Invoice %s

Hi %s,

%s has sent you an invoice.

Amount due: %s
Due date: %s
%s%s
Sent via %s`, data.InvoiceNumber, data.RecipientName, data.CompanyName, amount, due, linkText, notesText, data.AppName)

	return subject, html, text
}

// ClientInviteEmail renders the invitation (or re-invitation) sent when a
// client is given portal access.
func ClientInviteEmail(data ClientInviteData) (subject, html, text string) {
	if data.IsResend {
		subject = fmt.Sprintf("Reminder: your %s invitation from %s", data.AppName, data.CompanyName)
	} else {
		subject = fmt.Sprintf("%s invited you to %s", data.CompanyName, data.AppName)
	}

	html = fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;color:#222;max-width:560px;margin:0 auto;padding:24px;">
<h2>You're invited</h2>
<p>Hi %s,</p>
<p>%s uses %s to share invoices and project updates with you. Use the link below to access your account:</p>
<p><a href="%s" style="display:inline-block;padding:12px 24px;background:#111;color:#fff;text-decoration:none;border-radius:6px;">Accept invitation</a></p>
<p>This link expires in 72 hours and can only be used once.</p>
<p style="color:#999;font-size:12px;">If you weren't expecting this, you can safely ignore this email.</p>
</body>
</html>`, data.ClientName, data.CompanyName, data.AppName, data.InviteURL)

	text = fmt.Sprintf(`Hi %s,

%s uses %s to share invoices and project updates with you. Use this link to access your account:
%s

This link expires in 72 hours and can only be used once.

If you weren't expecting this, you can safely ignore this email.`, data.ClientName, data.CompanyName, data.AppName, data.InviteURL)

	return subject, html, text
}

// MagicLinkEmail renders the sign-in link email.
func MagicLinkEmail(appName, magicURL string) (subject, html, text string) {
	subject = fmt.Sprintf("Sign in to %s", appName)

	html = fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;color:#222;max-width:560px;margin:0 auto;padding:24px;">
<p>Click this link to sign in to your account:</p>
<p><a href="%s">%s</a></p>
<p>This link expires in 10 minutes and can only be used once.</p>
<p style="color:#999;font-size:12px;">If you didn't request this, ignore this email.</p>
</body>
</html>`, magicURL, magicURL)

	text = fmt.Sprintf(`Click this link to sign in to your account:
%s

This link expires in 10 minutes and can only be used once.

If you didn't request this, ignore this email.`, magicURL)

	return subject, html, text
}
