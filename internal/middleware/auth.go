package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/trinitynoble/BudgetBuddyProject/internal/auth"
	"github.com/trinitynoble/BudgetBuddyProject/internal/logger"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenValidator resolves a bearer token to the caller's identity.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*auth.Identity, error)
}

type AuthMiddleware struct {
	validator TokenValidator
	log       *logger.Logger
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		log:       logger.New("auth-middleware"),
	}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "authorization header required")
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			unauthorized(w, "authorization header must be of the form: Bearer <token>")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		identity, err := m.validator.ValidateToken(ctx, token)
		if err != nil {
			m.log.Debug("rejected token: %v", err)
			unauthorized(w, "invalid or expired token")
			return
		}

		ctx = context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentity returns the authenticated caller, or nil outside
// RequireAuth-wrapped handlers.
func GetIdentity(ctx context.Context) *auth.Identity {
	if identity, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return identity
	}
	return nil
}

// WithIdentity injects an identity into a context. Tests use it to hit
// handlers without a real token.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeJSONError(w, http.StatusUnauthorized, msg)
}
