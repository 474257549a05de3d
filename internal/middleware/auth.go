// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"craftpress/internal/token"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// sessionKey is the context key for the verified session.
const sessionKey contextKey = "session"

// LoadSession verifies the JWT from the request (cookie or Authorization
// header) and stores the session in the request context. It does NOT
// enforce authentication: an invalid or absent token just means an
// unauthenticated request.
func LoadSession(tokens *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := token.FromRequest(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := tokens.Verify(r.Context(), raw)
			if err != nil {
				// Expired or revoked tokens count as unauthenticated.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests without a fully authenticated session
// (valid token with 2FA completed where enabled). Must be applied after
// LoadSession.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromCtx(r.Context())
		if sess == nil {
			writeJSONError(w, "Authentication required.", http.StatusUnauthorized)
			return
		}
		if !sess.TwoFADone {
			writeJSONError(w, "Two-factor verification required.", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns 403 if the authenticated user is not an admin.
// Must be applied after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromCtx(r.Context())
		if sess == nil || sess.Role != "admin" {
			writeJSONError(w, "Forbidden.", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SessionFromCtx extracts the session from the request context.
// Returns nil if no session is loaded (user is not authenticated).
func SessionFromCtx(ctx context.Context) *token.Session {
	sess, _ := ctx.Value(sessionKey).(*token.Session)
	return sess
}

// WithSession returns a context carrying the given session. Handler tests
// use this to inject an authenticated caller without a real token.
func WithSession(ctx context.Context, sess *token.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// writeJSONError writes the standard error body used across the API.
func writeJSONError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":` + quote(msg) + `}`))
}

// quote JSON-escapes a plain message string. The messages here are fixed
// literals, so a minimal escape is enough.
func quote(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(append(out, '"'))
}
