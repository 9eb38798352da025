package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/repository"
)

// Shared in-memory repository fakes for service tests.

type stubProjectRepo struct {
	projects []*model.Project
}

func (s *stubProjectRepo) Create(project *model.Project) error {
	cp := *project
	s.projects = append(s.projects, &cp)
	return nil
}

func (s *stubProjectRepo) ByID(companyID, projectID string) (*model.Project, error) {
	for _, p := range s.projects {
		if p.CompanyID == companyID && p.ID == projectID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrProjectNotFound
}

func (s *stubProjectRepo) Projects(companyID string) ([]*model.Project, error) {
	var out []*model.Project
	for _, p := range s.projects {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubProjectRepo) CountActive(companyID string) (int, error) {
	n := 0
	for _, p := range s.projects {
		if p.CompanyID == companyID && p.Status == model.ProjectStatusActive {
			n++
		}
	}
	return n, nil
}

func (s *stubProjectRepo) Update(project *model.Project) error {
	for i, p := range s.projects {
		if p.CompanyID == project.CompanyID && p.ID == project.ID {
			cp := *project
			s.projects[i] = &cp
			return nil
		}
	}
	return repository.ErrProjectNotFound
}

func (s *stubProjectRepo) Delete(companyID, projectID string) error {
	for i, p := range s.projects {
		if p.CompanyID == companyID && p.ID == projectID {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return nil
		}
	}
	return repository.ErrProjectNotFound
}

type stubExpenseRepo struct {
	expenses []*model.Expense
}

func (s *stubExpenseRepo) Create(expense *model.Expense) error {
	cp := *expense
	s.expenses = append(s.expenses, &cp)
	return nil
}

func (s *stubExpenseRepo) ByID(companyID, expenseID string) (*model.Expense, error) {
	for _, e := range s.expenses {
		if e.CompanyID == companyID && e.ID == expenseID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repository.ErrExpenseNotFound
}

func (s *stubExpenseRepo) Expenses(companyID string) ([]*model.Expense, error) {
	var out []*model.Expense
	for _, e := range s.expenses {
		if e.CompanyID == companyID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubExpenseRepo) Since(companyID string, since time.Time) ([]*model.Expense, error) {
	var out []*model.Expense
	for _, e := range s.expenses {
		if e.CompanyID == companyID && !e.Date.Before(since) {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubExpenseRepo) Update(expense *model.Expense) error {
	for i, e := range s.expenses {
		if e.CompanyID == expense.CompanyID && e.ID == expense.ID {
			cp := *expense
			s.expenses[i] = &cp
			return nil
		}
	}
	return repository.ErrExpenseNotFound
}

func (s *stubExpenseRepo) SetFlags(companyID, expenseID string, billable, invoiced bool) error {
	for _, e := range s.expenses {
		if e.CompanyID == companyID && e.ID == expenseID {
			e.Billable = billable
			e.Invoiced = invoiced
			return nil
		}
	}
	return repository.ErrExpenseNotFound
}

func (s *stubExpenseRepo) SetReceiptPath(companyID, expenseID, path string) error {
	for _, e := range s.expenses {
		if e.CompanyID == companyID && e.ID == expenseID {
			e.ReceiptPath = &path
			return nil
		}
	}
	return repository.ErrExpenseNotFound
}

func (s *stubExpenseRepo) Delete(companyID, expenseID string) error {
	for i, e := range s.expenses {
		if e.CompanyID == companyID && e.ID == expenseID {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return repository.ErrExpenseNotFound
}

type stubClientRepo struct {
	clients []*model.Client
	links   []*model.ClientUser
}

func (s *stubClientRepo) Create(client *model.Client) error {
	cp := *client
	s.clients = append(s.clients, &cp)
	return nil
}

func (s *stubClientRepo) ByID(companyID, clientID string) (*model.Client, error) {
	for _, c := range s.clients {
		if c.CompanyID == companyID && c.ID == clientID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrClientNotFound
}

func (s *stubClientRepo) Clients(companyID string) ([]*model.Client, error) {
	var out []*model.Client
	for _, c := range s.clients {
		if c.CompanyID == companyID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubClientRepo) Count(companyID string) (int, error) {
	n := 0
	for _, c := range s.clients {
		if c.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (s *stubClientRepo) Update(client *model.Client) error {
	for i, c := range s.clients {
		if c.CompanyID == client.CompanyID && c.ID == client.ID {
			cp := *client
			s.clients[i] = &cp
			return nil
		}
	}
	return repository.ErrClientNotFound
}

func (s *stubClientRepo) Delete(companyID, clientID string) error {
	for i, c := range s.clients {
		if c.CompanyID == companyID && c.ID == clientID {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			return nil
		}
	}
	return repository.ErrClientNotFound
}

func (s *stubClientRepo) LinkUser(link *model.ClientUser) error {
	cp := *link
	s.links = append(s.links, &cp)
	return nil
}

func (s *stubClientRepo) LinkByClientAndUser(clientID, userID string) (*model.ClientUser, error) {
	for _, l := range s.links {
		if l.ClientID == clientID && l.UserID == userID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, repository.ErrClientNotFound
}

// stubInvoiceRepo enforces the per-company unique invoice number so the
// service's constraint mapping can be exercised.
type stubInvoiceRepo struct {
	invoices []*model.Invoice
}

func (s *stubInvoiceRepo) Create(invoice *model.Invoice) error {
	for _, inv := range s.invoices {
		if inv.CompanyID == invoice.CompanyID && inv.Number == invoice.Number {
			return fmt.Errorf("UNIQUE constraint failed: invoices.number")
		}
	}
	cp := *invoice
	s.invoices = append(s.invoices, &cp)
	return nil
}

func (s *stubInvoiceRepo) ByID(companyID, invoiceID string) (*model.Invoice, error) {
	for _, inv := range s.invoices {
		if inv.CompanyID == companyID && inv.ID == invoiceID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, repository.ErrInvoiceNotFound
}

func (s *stubInvoiceRepo) Invoices(companyID string) ([]*model.Invoice, error) {
	var out []*model.Invoice
	for _, inv := range s.invoices {
		if inv.CompanyID == companyID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubInvoiceRepo) Recent(companyID string, limit int) ([]*model.Invoice, error) {
	out, _ := s.Invoices(companyID)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubInvoiceRepo) Unpaid(companyID string) ([]*model.Invoice, error) {
	var out []*model.Invoice
	for _, inv := range s.invoices {
		if inv.CompanyID == companyID && inv.Unpaid() {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubInvoiceRepo) PaidSince(companyID string, since time.Time) ([]*model.Invoice, error) {
	var out []*model.Invoice
	for _, inv := range s.invoices {
		if inv.CompanyID == companyID && inv.Status == model.InvoiceStatusPaid && !inv.CreatedAt.Before(since) {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubInvoiceRepo) Update(invoice *model.Invoice) error {
	for _, inv := range s.invoices {
		if inv.CompanyID == invoice.CompanyID && inv.Number == invoice.Number && inv.ID != invoice.ID {
			return fmt.Errorf("UNIQUE constraint failed: invoices.number")
		}
	}
	for i, inv := range s.invoices {
		if inv.CompanyID == invoice.CompanyID && inv.ID == invoice.ID {
			cp := *invoice
			s.invoices[i] = &cp
			return nil
		}
	}
	return repository.ErrInvoiceNotFound
}

func (s *stubInvoiceRepo) SetStatus(companyID, invoiceID, status string) error {
	for _, inv := range s.invoices {
		if inv.CompanyID == companyID && inv.ID == invoiceID {
			inv.Status = status
			inv.UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrInvoiceNotFound
}

func (s *stubInvoiceRepo) SetPaymentLink(companyID, invoiceID, link string) error {
	for _, inv := range s.invoices {
		if inv.CompanyID == companyID && inv.ID == invoiceID {
			inv.PaymentLink = &link
			return nil
		}
	}
	return repository.ErrInvoiceNotFound
}

func (s *stubInvoiceRepo) Delete(companyID, invoiceID string) error {
	for i, inv := range s.invoices {
		if inv.CompanyID == companyID && inv.ID == invoiceID {
			s.invoices = append(s.invoices[:i], s.invoices[i+1:]...)
			return nil
		}
	}
	return repository.ErrInvoiceNotFound
}

type stubUserRepo struct {
	users []*model.User
}

func (s *stubUserRepo) Create(user *model.User) error {
	cp := *user
	s.users = append(s.users, &cp)
	return nil
}

func (s *stubUserRepo) ByID(id string) (*model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUserRepo) ByEmail(email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type stubTokenRepo struct {
	tokens []*model.Token
}

func (s *stubTokenRepo) Create(token *model.Token) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	cp := *token
	s.tokens = append(s.tokens, &cp)
	return nil
}

func (s *stubTokenRepo) ByToken(raw string) (*model.Token, error) {
	for _, t := range s.tokens {
		if t.Token == raw {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrTokenNotFound
}

func (s *stubTokenRepo) Delete(id string) error {
	for i, t := range s.tokens {
		if t.ID == id {
			s.tokens = append(s.tokens[:i], s.tokens[i+1:]...)
			return nil
		}
	}
	return repository.ErrTokenNotFound
}

func (s *stubTokenRepo) DeleteByUserAndType(userID, tokenType string) error {
	kept := s.tokens[:0]
	for _, t := range s.tokens {
		if t.UserID != userID || t.Type != tokenType {
			kept = append(kept, t)
		}
	}
	s.tokens = kept
	return nil
}

type stubCompanyRepo struct {
	companies []*model.Company
}

func (s *stubCompanyRepo) Create(company *model.Company) error {
	cp := *company
	s.companies = append(s.companies, &cp)
	return nil
}

func (s *stubCompanyRepo) ByID(id string) (*model.Company, error) {
	for _, c := range s.companies {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrCompanyNotFound
}

type stubNotificationRepo struct {
	notifications []*model.Notification
}

func (s *stubNotificationRepo) Create(notification *model.Notification) error {
	cp := *notification
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	s.notifications = append(s.notifications, &cp)
	return nil
}

func (s *stubNotificationRepo) Latest(userID string, limit int) ([]*model.Notification, error) {
	var out []*model.Notification
	for i := len(s.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if s.notifications[i].UserID == userID {
			cp := *s.notifications[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubNotificationRepo) UnreadIDs(userID string) ([]string, error) {
	var ids []string
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			ids = append(ids, n.ID)
		}
	}
	return ids, nil
}

func (s *stubNotificationRepo) MarkRead(userID, notificationID string) error {
	for _, n := range s.notifications {
		if n.UserID == userID && n.ID == notificationID {
			n.Read = true
			return nil
		}
	}
	return repository.ErrNotificationNotFound
}

func (s *stubNotificationRepo) MarkReadBatch(userID string, ids []string) error {
	for _, id := range ids {
		if err := s.MarkRead(userID, id); err != nil {
			return err
		}
	}
	return nil
}
