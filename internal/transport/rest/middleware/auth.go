package middleware

import (
	"context"
	"net/http"
	"strings"

	"triviarena/internal/model"
	"triviarena/internal/service"
)

type contextKey string

const claimsKey contextKey = "playClaims"

// AuthMiddleware attaches play-token claims to the request context.
type AuthMiddleware struct {
	authSvc *service.AuthService
}

func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// Optional validates a bearer token when one is present and otherwise lets
// the request through anonymously. A present-but-invalid token is rejected
// so callers do not silently lose their identity mid-session.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := m.authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaims extracts play claims from the context, nil for anonymous calls.
func GetClaims(ctx context.Context) *model.PlayClaims {
	if v := ctx.Value(claimsKey); v != nil {
		return v.(*model.PlayClaims)
	}
	return nil
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
