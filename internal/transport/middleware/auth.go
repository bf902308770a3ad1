package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tboivin/swipemeal-backend/internal/auth"
	"github.com/tboivin/swipemeal-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (auth.Identity, error)
}

// Auth validates the bearer token, when present, and stores the caller's
// identity in the context. Requests without a token pass through anonymous;
// per-operation authorization happens in the services.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			identity, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithUserID(r.Context(), identity.UserID)
			if identity.Email != "" {
				ctx = ctxutil.WithUserEmail(ctx, identity.Email)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
