package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/freelancehub/freelancehub/internal/config"
	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/repository"
	"github.com/freelancehub/freelancehub/internal/service/mail"
)

var ErrClientNoEmail = errors.New("client has no email address")

// InviteService grants a client portal access: it finds or creates the
// auth user behind the client's email, links it to the client record,
// and emails a single-use invite link. Re-inviting an already linked
// client resends the link.
type InviteService struct {
	cfg         *config.Config
	clientRepo  repository.ClientRepository
	userRepo    repository.UserRepository
	tokenRepo   repository.TokenRepository
	companyRepo repository.CompanyRepository
	mailFactory *mail.Factory
}

func NewInviteService(
	cfg *config.Config,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	companyRepo repository.CompanyRepository,
	mailFactory *mail.Factory,
) *InviteService {
	return &InviteService{
		cfg:         cfg,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		companyRepo: companyRepo,
		mailFactory: mailFactory,
	}
}

type InviteResult struct {
	ClientID string `json:"client_id"`
	Email    string `json:"email"`
	Resent   bool   `json:"resent"`
}

func (s *InviteService) InviteClient(ctx context.Context, companyID, clientID string) (*InviteResult, error) {
	client, err := s.clientRepo.ByID(companyID, clientID)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(client.Email))
	if email == "" {
		return nil, ErrClientNoEmail
	}

	company, err := s.companyRepo.ByID(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	// Find or create the passwordless auth user behind the address.
	user, err := s.userRepo.ByEmail(email)
	if errors.Is(err, repository.ErrUserNotFound) {
		user = &model.User{
			ID:    uuid.New().String(),
			Email: email,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create portal user: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	resent := true
	_, err = s.clientRepo.LinkByClientAndUser(client.ID, user.ID)
	if errors.Is(err, repository.ErrClientNotFound) {
		resent = false
		link := &model.ClientUser{
			ClientID: client.ID,
			UserID:   user.ID,
			Email:    email,
		}
		if err := s.clientRepo.LinkUser(link); err != nil {
			return nil, fmt.Errorf("failed to link client user: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to check client link: %w", err)
	}

	// One live invite per user; a resend replaces the previous link.
	if err := s.tokenRepo.DeleteByUserAndType(user.ID, model.TokenTypeClientInvite); err != nil {
		return nil, fmt.Errorf("failed to clear previous invites: %w", err)
	}

	raw, err := randomToken()
	if err != nil {
		return nil, err
	}
	token := &model.Token{
		UserID:    user.ID,
		Token:     raw,
		Type:      model.TokenTypeClientInvite,
		ExpiresAt: time.Now().Add(s.cfg.TokenInviteExpiry),
	}
	if err := s.tokenRepo.Create(token); err != nil {
		return nil, fmt.Errorf("failed to store invite token: %w", err)
	}

	provider, err := s.mailFactory.ForCompany(nil)
	if err != nil {
		return nil, err
	}

	inviteURL := fmt.Sprintf("%s/portal/accept?token=%s", strings.TrimSuffix(s.cfg.AppURL, "/"), raw)
	subject, html, text := mail.ClientInviteEmail(mail.ClientInviteData{
		AppName:     s.cfg.AppName,
		CompanyName: company.Name,
		ClientName:  client.Name,
		InviteURL:   inviteURL,
		IsResend:    resent,
	})

	err = provider.Send(ctx, mail.Message{
		From:     s.cfg.EmailFrom,
		FromName: company.Name,
		To:       email,
		ToName:   client.Name,
		Subject:  subject,
		HTML:     html,
		Text:     text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send invite: %w", err)
	}

	return &InviteResult{
		ClientID: client.ID,
		Email:    email,
		Resent:   resent,
	}, nil
}

// AcceptInvite consumes a client invite token and returns the portal
// user to sign in.
func (s *InviteService) AcceptInvite(raw string) (*model.User, error) {
	token, err := s.tokenRepo.ByToken(raw)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return nil, ErrTokenInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}

	if token.Type != model.TokenTypeClientInvite || token.Expired(time.Now()) {
		return nil, ErrTokenInvalid
	}

	if err := s.tokenRepo.Delete(token.ID); err != nil {
		return nil, fmt.Errorf("failed to consume token: %w", err)
	}

	user, err := s.userRepo.ByID(token.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
