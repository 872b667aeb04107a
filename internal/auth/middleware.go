// internal/auth/middleware.go
//
// Bearer-token middleware for the admin routes.
//
// Context
// -------
// Every route under /api/admin except /login runs behind Require.  Missing,
// malformed, invalid, or expired tokens yield 401 with the same envelope
// the rest of the API uses; valid claims are stored in the request context
// for handlers that want the acting admin's identity.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/abasuthakur/portfolio-api/internal/metrics"
)

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the claims stored by Require, or nil outside it.
func FromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(ctxKey{}).(*Claims)
	return c
}

// Require wraps a handler and enforces a valid bearer token.
func (s *Signer) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(w, "Authentication required.")
			return
		}

		claims, err := s.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			zap.S().Debugw("token rejected", "err", err)
			metrics.AdminAuthFailuresTotal.Inc()
			unauthorized(w, "Invalid or expired token.")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": msg,
	})
}
