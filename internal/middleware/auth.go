package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/freelancehub/freelancehub/internal/config"
	"github.com/freelancehub/freelancehub/internal/ctxkeys"
	"github.com/freelancehub/freelancehub/internal/handler/httpjson"
	"github.com/freelancehub/freelancehub/internal/repository"
	"github.com/freelancehub/freelancehub/internal/service"
)

const AuthCookieName = "auth_token"

// SetAuthCookie writes the session JWT. Secure tracks APP_ENV rather
// than r.TLS because production runs behind a load balancer.
func SetAuthCookie(w http.ResponseWriter, cfg *config.Config, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(cfg.JWTExpiry.Seconds()),
	})
}

func ClearAuthCookie(w http.ResponseWriter, cfg *config.Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// AuthMiddleware resolves the JWT cookie into user + profile context.
// Requests without a valid session continue unauthenticated; RequireAuth
// decides whether that matters for the route.
func AuthMiddleware(
	authService *service.AuthService,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	cfg *config.Config,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AuthCookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := authService.ParseJWT(cookie.Value)
			if err != nil {
				ClearAuthCookie(w, cfg)
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.ByID(userID)
			if err != nil {
				ClearAuthCookie(w, cfg)
				next.ServeHTTP(w, r)
				return
			}

			// Security: never carry the password hash in request context
			user.PasswordHash = nil

			ctx := ctxkeys.WithUser(r.Context(), user)

			// The profile lookup runs under a hard bound; past it the
			// request proceeds without a company partition instead of
			// hanging. Portal users legitimately have no profile.
			profileCtx, cancel := context.WithTimeout(r.Context(), cfg.ProfileFetchTimeout)
			profile, err := profileRepo.ByUserID(profileCtx, userID)
			cancel()
			switch {
			case err == nil:
				ctx = ctxkeys.WithProfile(ctx, profile)
			case errors.Is(err, repository.ErrProfileNotFound):
			case errors.Is(err, context.DeadlineExceeded):
			default:
				ClearAuthCookie(w, cfg)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects unauthenticated requests with a JSON 401. Routes
// under /app additionally need a resolved profile, since every query is
// scoped by the profile's company.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			httpjson.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		profile := ctxkeys.Profile(r.Context())
		if profile == nil {
			httpjson.Error(w, http.StatusUnauthorized, "no profile for user")
			return
		}

		next.ServeHTTP(w, r)
	}
}

// RequireGuest rejects authenticated requests; used on signup/login.
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) != nil {
			httpjson.Error(w, http.StatusForbidden, "already signed in")
			return
		}
		next.ServeHTTP(w, r)
	}
}
