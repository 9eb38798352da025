package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/freelancehub/freelancehub/internal/config"
	"github.com/freelancehub/freelancehub/internal/ctxkeys"
	"github.com/freelancehub/freelancehub/internal/handler/httpjson"
	"github.com/freelancehub/freelancehub/internal/middleware"
	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/service"
)

type AuthHandler struct {
	authService   *service.AuthService
	inviteService *service.InviteService
	cfg           *config.Config
}

func NewAuthHandler(authService *service.AuthService, inviteService *service.InviteService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		inviteService: inviteService,
		cfg:           cfg,
	}
}

type sessionResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		CompanyName string `json:"company_name"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Signup(req.Name, req.Email, req.Password, req.CompanyName)
	if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrSignupInvalid) {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("signup failed", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "signup failed")
		return
	}

	h.startSession(w, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		httpjson.Error(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		slog.Error("login failed", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.startSession(w, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearAuthCookie(w, h.cfg)
	httpjson.Write(w, http.StatusOK, map[string]bool{"ok": true})
}

// RequestMagicLink always answers 200 so the endpoint cannot be used to
// probe which emails have accounts.
func (h *AuthHandler) RequestMagicLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.authService.RequestMagicLink(r.Context(), req.Email)
	if errors.Is(err, service.ErrSignupInvalid) {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("magic link request failed", "error", err)
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": "if the address has an account, a sign-in link is on its way",
	})
}

func (h *AuthHandler) VerifyMagicLink(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		httpjson.Error(w, http.StatusBadRequest, "token is required")
		return
	}

	user, err := h.authService.RedeemMagicLink(raw)
	if errors.Is(err, service.ErrTokenInvalid) {
		httpjson.Error(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		slog.Error("magic link verification failed", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	h.startSession(w, user)
}

// AcceptInvite signs a client portal user in from their invite link.
func (h *AuthHandler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		httpjson.Error(w, http.StatusBadRequest, "token is required")
		return
	}

	user, err := h.inviteService.AcceptInvite(raw)
	if errors.Is(err, service.ErrTokenInvalid) {
		httpjson.Error(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		slog.Error("invite acceptance failed", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "invite acceptance failed")
		return
	}

	h.startSession(w, user)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	profile := ctxkeys.Profile(r.Context())

	resp := map[string]any{
		"user": sessionResponse{UserID: user.ID, Email: user.Email},
	}
	if profile != nil {
		resp["profile"] = map[string]string{
			"name":       profile.Name,
			"company_id": profile.CompanyID,
		}
	}
	httpjson.Write(w, http.StatusOK, resp)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, user *model.User) {
	token, err := h.authService.IssueJWT(user.ID)
	if err != nil {
		slog.Error("failed to issue session token", "error", err, "user_id", user.ID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	middleware.SetAuthCookie(w, h.cfg, token)
	httpjson.Write(w, http.StatusOK, sessionResponse{UserID: user.ID, Email: user.Email})
}
