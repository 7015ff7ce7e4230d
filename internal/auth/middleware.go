package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	apperrors "smartbooking/internal/errors"
)

type ctxKey struct{}

// AdminFromContext returns the claims stored by AdminAuthMiddleware.
func AdminFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Claims)
	return c, ok
}

// AdminAuthMiddleware rejects requests without a valid Bearer token.
func AdminAuthMiddleware(tokens *Tokens, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				apperrors.Write(w, apperrors.ErrUnauthorized("Missing or invalid Authorization header"))
				return
			}
			claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.Debug("admin token rejected", zap.Error(err))
				apperrors.Write(w, apperrors.ErrUnauthorized("Unauthorized"))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
		})
	}
}
