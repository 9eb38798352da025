package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/freelancehub/freelancehub/internal/config"
	"github.com/freelancehub/freelancehub/internal/ctxkeys"
	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/repository"
	"github.com/freelancehub/freelancehub/internal/service"
	"github.com/freelancehub/freelancehub/internal/service/mail"
)

// Minimal in-memory repositories, just enough to drive the invite flow.

type fakeClientRepo struct {
	clients []*model.Client
	links   []*model.ClientUser
}

func (f *fakeClientRepo) Create(client *model.Client) error { return nil }

func (f *fakeClientRepo) ByID(companyID, clientID string) (*model.Client, error) {
	for _, c := range f.clients {
		if c.CompanyID == companyID && c.ID == clientID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrClientNotFound
}

func (f *fakeClientRepo) Clients(companyID string) ([]*model.Client, error) { return nil, nil }
func (f *fakeClientRepo) Count(companyID string) (int, error)               { return 0, nil }
func (f *fakeClientRepo) Update(client *model.Client) error                 { return nil }
func (f *fakeClientRepo) Delete(companyID, clientID string) error           { return nil }

func (f *fakeClientRepo) LinkUser(link *model.ClientUser) error {
	cp := *link
	f.links = append(f.links, &cp)
	return nil
}

func (f *fakeClientRepo) LinkByClientAndUser(clientID, userID string) (*model.ClientUser, error) {
	for _, l := range f.links {
		if l.ClientID == clientID && l.UserID == userID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, repository.ErrClientNotFound
}

type fakeUserRepo struct {
	users []*model.User
}

func (f *fakeUserRepo) Create(user *model.User) error {
	cp := *user
	f.users = append(f.users, &cp)
	return nil
}

func (f *fakeUserRepo) ByID(id string) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) ByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type fakeTokenRepo struct {
	tokens []*model.Token
}

func (f *fakeTokenRepo) Create(token *model.Token) error {
	cp := *token
	f.tokens = append(f.tokens, &cp)
	return nil
}

func (f *fakeTokenRepo) ByToken(raw string) (*model.Token, error) {
	for _, t := range f.tokens {
		if t.Token == raw {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrTokenNotFound
}

func (f *fakeTokenRepo) Delete(id string) error { return nil }

func (f *fakeTokenRepo) DeleteByUserAndType(userID, tokenType string) error {
	kept := f.tokens[:0]
	for _, t := range f.tokens {
		if t.UserID != userID || t.Type != tokenType {
			kept = append(kept, t)
		}
	}
	f.tokens = kept
	return nil
}

type fakeCompanyRepo struct {
	companies []*model.Company
}

func (f *fakeCompanyRepo) Create(company *model.Company) error { return nil }

func (f *fakeCompanyRepo) ByID(id string) (*model.Company, error) {
	for _, c := range f.companies {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrCompanyNotFound
}

func newInviteHandler(t *testing.T, clients ...*model.Client) *FunctionsHandler {
	t.Helper()

	cfg := &config.Config{
		AppName:           "FreelanceHub",
		AppURL:            "https://app.test",
		EmailFrom:         "noreply@app.test",
		TokenInviteExpiry: 72 * time.Hour,
	}
	svc := service.NewInviteService(
		cfg,
		&fakeClientRepo{clients: clients},
		&fakeUserRepo{},
		&fakeTokenRepo{},
		&fakeCompanyRepo{companies: []*model.Company{{ID: "company-1", Name: "Studio North"}}},
		mail.NewFactory("", true),
	)
	return NewFunctionsHandler(nil, svc)
}

func postInvite(t *testing.T, h *FunctionsHandler, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/functions/invite-client", strings.NewReader(body))
	ctx := ctxkeys.WithUser(req.Context(), &model.User{ID: "user-1", Email: "owner@app.test"})
	ctx = ctxkeys.WithProfile(ctx, &model.Profile{ID: "profile-1", UserID: "user-1", CompanyID: "company-1"})
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.InviteClient(rec, req)

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %v (body %q)", err, rec.Body.String())
	}
	return rec.Code, got
}

func TestInviteClientAlways200(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed body", `{"client_id":`},
		{"missing client_id", `{}`},
		{"unknown client", `{"client_id": "missing"}`},
		{"client without email", `{"client_id": "client-2"}`},
	}

	h := newInviteHandler(t,
		&model.Client{ID: "client-2", CompanyID: "company-1", Name: "No Mail"},
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, got := postInvite(t, h, tt.body)
			if status != http.StatusOK {
				t.Fatalf("status = %d, want 200 regardless of outcome", status)
			}
			msg, ok := got["error"].(string)
			if !ok || msg == "" {
				t.Fatalf("body must carry a non-empty error field, got %v", got)
			}
			if _, ok := got["message"]; ok {
				t.Errorf("failure body must not carry a message field, got %v", got)
			}
		})
	}
}

func TestInviteClientSuccessEnvelope(t *testing.T) {
	h := newInviteHandler(t,
		&model.Client{ID: "client-1", CompanyID: "company-1", Name: "Dana", Email: "dana@acme.test"},
	)

	status, got := postInvite(t, h, `{"client_id": "client-1"}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if got["message"] != "invitation sent" {
		t.Errorf("message = %v, want %q", got["message"], "invitation sent")
	}
	if got["email"] != "dana@acme.test" || got["resent"] != false {
		t.Errorf("unexpected result fields: %v", got)
	}
	if _, ok := got["error"]; ok {
		t.Errorf("success body must not carry an error field, got %v", got)
	}

	// A second invite goes through the resend path.
	status, got = postInvite(t, h, `{"client_id": "client-1"}`)
	if status != http.StatusOK {
		t.Fatalf("resend status = %d, want 200", status)
	}
	if got["message"] != "invitation resent" || got["resent"] != true {
		t.Errorf("resend envelope = %v", got)
	}
}
