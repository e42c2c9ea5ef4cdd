package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const ctxUserID ctxKey = "user_id"

// UserID extracts the authenticated user id set by Authenticator.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(ctxUserID).(int)
	return id, ok
}

// WithUserID is exported for tests that need an authenticated context.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, ctxUserID, userID)
}

// Authenticator validates the Bearer token and injects the user id into the
// request context. Any failure is a plain 401; callers learn nothing about
// why the token was rejected.
func Authenticator(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "missing or invalid authorization header", http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			id, ok := claims["user_id"].(float64)
			if !ok || id <= 0 {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := WithUserID(r.Context(), int(id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
