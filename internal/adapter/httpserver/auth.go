package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fairyhunter13/ai-career-coach/internal/domain"
)

type userIDKey struct{}

// BearerAuth verifies the Authorization bearer token (HS256) and stores the
// subject claim — the external user id — in the request context. Requests
// without a valid token proceed with no identity; handlers decide whether
// the endpoint requires one.
func BearerAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			raw := strings.TrimPrefix(auth, "Bearer ")
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				next.ServeHTTP(w, r)
				return
			}
			sub, err := tok.Claims.GetSubject()
			if err != nil || sub == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), sub)))
		})
	}
}

// ContextWithUserID returns a context carrying the authenticated external id.
func ContextWithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// CurrentUserID extracts the authenticated external id, or ErrUnauthorized
// when the request carries no identity.
func CurrentUserID(ctx context.Context) (string, error) {
	if v, ok := ctx.Value(userIDKey{}).(string); ok && v != "" {
		return v, nil
	}
	return "", domain.ErrUnauthorized
}
