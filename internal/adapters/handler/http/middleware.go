package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

type contextKey string

const IdentityKey contextKey = "identity"

const accessTokenCookie = "access_token"

// IdentityFromContext returns the caller resolved by AuthMiddleware.
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*domain.Identity)
	return identity, ok && identity != nil
}

type AuthMiddleware struct {
	verifier ports.TokenVerifier
	users    ports.UserService
}

func NewAuthMiddleware(verifier ports.TokenVerifier, users ports.UserService) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		users:    users,
	}
}

// Handler rejects requests without a valid token. The verified identity is
// recorded as a user and stored in the request context.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			writeError(w, r, domain.ErrUnauthenticated)
			return
		}

		identity, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			hlog.FromRequest(r).Debug().Err(err).Msg("token rejected")
			writeError(w, r, domain.ErrUnauthenticated)
			return
		}

		if _, err := m.users.Sync(r.Context(), identity); err != nil {
			writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), IdentityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie(accessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func requestLogger(next http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("req_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(next)
}
