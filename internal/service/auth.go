package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/freelancehub/freelancehub/internal/config"
	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/repository"
	"github.com/freelancehub/freelancehub/internal/service/mail"
	"github.com/freelancehub/freelancehub/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrSignupInvalid      = errors.New("invalid signup")
)

type AuthService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	companyRepo  repository.CompanyRepository
	settingsRepo repository.SettingsRepository
	tokenRepo    repository.TokenRepository
	mailFactory  *mail.Factory
}

func NewAuthService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	companyRepo repository.CompanyRepository,
	settingsRepo repository.SettingsRepository,
	tokenRepo repository.TokenRepository,
	mailFactory *mail.Factory,
) *AuthService {
	return &AuthService{
		cfg:          cfg,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		companyRepo:  companyRepo,
		settingsRepo: settingsRepo,
		tokenRepo:    tokenRepo,
		mailFactory:  mailFactory,
	}
}

// Signup creates the user with their company, profile and default
// settings in one go, then returns the signed-in user.
func (s *AuthService) Signup(name, email, password, companyName string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSignupInvalid, err)
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSignupInvalid, err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSignupInvalid, err)
	}
	if companyName = strings.TrimSpace(companyName); companyName == "" {
		companyName = name
	}

	_, err := s.userRepo.ByEmail(email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: &hashStr,
	}
	if err := s.userRepo.Create(user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	company := &model.Company{Name: companyName}
	if err := s.companyRepo.Create(company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	profile := &model.Profile{
		UserID:    user.ID,
		CompanyID: company.ID,
		Name:      strings.TrimSpace(name),
	}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	settings := &model.Settings{CompanyID: company.ID}
	if err := s.settingsRepo.Create(settings); err != nil {
		return nil, fmt.Errorf("failed to create settings: %w", err)
	}

	return user, nil
}

// Login verifies a password. Unknown email and wrong password report the
// same error.
func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepo.ByEmail(email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// RequestMagicLink emails a single-use sign-in link. Unknown addresses
// return nil without sending, so the endpoint never confirms whether an
// account exists.
func (s *AuthService) RequestMagicLink(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validation.ValidateEmail(email); err != nil {
		return fmt.Errorf("%w: %s", ErrSignupInvalid, err)
	}

	user, err := s.userRepo.ByEmail(email)
	if errors.Is(err, repository.ErrUserNotFound) {
		slog.Info("magic link requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	// A fresh request invalidates any outstanding link.
	if err := s.tokenRepo.DeleteByUserAndType(user.ID, model.TokenTypeMagicLink); err != nil {
		return fmt.Errorf("failed to clear previous magic links: %w", err)
	}

	raw, err := randomToken()
	if err != nil {
		return err
	}
	token := &model.Token{
		UserID:    user.ID,
		Token:     raw,
		Type:      model.TokenTypeMagicLink,
		ExpiresAt: time.Now().Add(s.cfg.TokenMagicLinkExpiry),
	}
	if err := s.tokenRepo.Create(token); err != nil {
		return fmt.Errorf("failed to store magic link token: %w", err)
	}

	provider, err := s.mailFactory.ForCompany(nil)
	if err != nil {
		return err
	}

	magicURL := fmt.Sprintf("%s/auth/magic?token=%s", strings.TrimSuffix(s.cfg.AppURL, "/"), raw)
	subject, html, text := mail.MagicLinkEmail(s.cfg.AppName, magicURL)

	err = provider.Send(ctx, mail.Message{
		From:     s.cfg.EmailFrom,
		FromName: s.cfg.AppName,
		To:       user.Email,
		Subject:  subject,
		HTML:     html,
		Text:     text,
	})
	if err != nil {
		return fmt.Errorf("failed to send magic link: %w", err)
	}
	return nil
}

// RedeemMagicLink consumes a magic link token and returns its user.
// Tokens are single-use: the row is deleted before the user is returned.
func (s *AuthService) RedeemMagicLink(raw string) (*model.User, error) {
	token, err := s.tokenRepo.ByToken(raw)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return nil, ErrTokenInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}

	if token.Type != model.TokenTypeMagicLink || token.Expired(time.Now()) {
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

// IssueJWT mints the session token stored in the auth cookie.
func (s *AuthService) IssueJWT(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseJWT validates a session token and returns the user ID.
func (s *AuthService) ParseJWT(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
