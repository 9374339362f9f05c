package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hashimpk07/FMPortal-sub002/internal/domain"
	"go.uber.org/zap"
)

// Middleware validates bearer tokens and attaches the user identity to the
// request context. When auth is disabled in configuration the middleware
// passes requests through untouched.
type Middleware struct {
	validator *Validator
	enabled   bool
	logger    *zap.Logger
}

// NewMiddleware creates the auth middleware. A nil validator is only valid
// when enabled is false.
func NewMiddleware(validator *Validator, enabled bool, logger *zap.Logger) *Middleware {
	return &Middleware{validator: validator, enabled: enabled, logger: logger}
}

// RequireAuth rejects requests without a valid bearer token.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			m.unauthorized(w, "Missing bearer token")
			return
		}

		user, err := m.validator.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			m.logger.Debug("token validation failed", zap.Error(err))
			m.unauthorized(w, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), user)))
	})
}

func (m *Middleware) unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   domain.ErrorTypeUnauthorized,
		Title:  http.StatusText(http.StatusUnauthorized),
		Status: http.StatusUnauthorized,
		Detail: detail,
	})
}
