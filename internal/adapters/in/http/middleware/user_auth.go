// internal/adapters/in/http/middleware/user_auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient is an alias for the firebase auth client so router deps
// can take *middleware.FirebaseAuthClient.
type FirebaseAuthClient = fbauth.Client

type ctxKey struct{ name string }

var (
	ctxKeyUID   = ctxKey{name: "uid"}
	ctxKeyEmail = ctxKey{name: "email"}
)

// UserAuthMiddleware verifies a Firebase ID token (shopper side) and stores
// uid/email in the request context. Identity itself lives in the external
// identity service; this layer only verifies and forwards.
type UserAuthMiddleware struct {
	FirebaseAuth *FirebaseAuthClient
}

func (m *UserAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.FirebaseAuth == nil {
			http.Error(w, "user auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		email := ""
		if emailRaw, ok := token.Claims["email"]; ok {
			if e, ok2 := emailRaw.(string); ok2 {
				email = strings.TrimSpace(e)
			}
		}

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
		if email != "" {
			ctx = context.WithValue(ctx, ctxKeyEmail, email)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalHandler verifies the Firebase ID token when one is presented and
// passes the request through anonymously otherwise. Carts accept an explicit
// cartId, so a missing token is not an error here.
func (m *UserAuthMiddleware) OptionalHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if m.FirebaseAuth == nil || !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyUID, uid)))
	})
}

// CurrentUserUID returns the verified Firebase UID, if any.
func CurrentUserUID(r *http.Request) (string, bool) {
	v := r.Context().Value(ctxKeyUID)
	u, ok := v.(string)
	if !ok || strings.TrimSpace(u) == "" {
		return "", false
	}
	return strings.TrimSpace(u), true
}
