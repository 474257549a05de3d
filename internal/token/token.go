// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package token provides JWT-based session management. Tokens are signed
// HS256, carried in an HttpOnly cookie (or an Authorization: Bearer header
// for API clients), and revocable via a Redis denylist keyed by token ID.
package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"craftpress/internal/models"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "cp_session"

	// revokedPrefix namespaces denylist keys in Redis.
	revokedPrefix = "revoked:"
)

// ErrInvalidToken is returned for malformed, expired, or revoked tokens.
var ErrInvalidToken = errors.New("invalid token")

// Session is the authenticated identity carried by a verified token.
type Session struct {
	UserID    uuid.UUID
	Username  string
	Email     string
	Role      string
	TwoFADone bool
}

// claims is the JWT payload. TwoFADone is false on the interim token issued
// between password check and TOTP verification.
type claims struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TwoFADone bool   `json:"tfa"`
	jwt.RegisteredClaims
}

// Manager issues, verifies, and revokes session tokens.
type Manager struct {
	secret      []byte
	ttl         time.Duration
	redis       *redis.Client
	secureCooky bool
}

// NewManager creates a token manager. The Redis client backs the revocation
// list; secureCookies marks session cookies HTTPS-only.
func NewManager(secret string, ttl time.Duration, rdb *redis.Client, secureCookies bool) *Manager {
	return &Manager{
		secret:      []byte(secret),
		ttl:         ttl,
		redis:       rdb,
		secureCooky: secureCookies,
	}
}

// Issue signs a new token for the user. twoFADone is false for the interim
// token a user holds between password login and TOTP verification.
func (m *Manager) Issue(u *models.User, twoFADone bool) (string, error) {
	now := time.Now()
	c := claims{
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		TwoFADone: twoFADone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string, checking signature, expiry,
// and the revocation list. Returns the session it carries.
func (m *Manager) Verify(ctx context.Context, tokenString string) (*Session, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	// Revoked tokens are denied until their natural expiry.
	if m.redis != nil {
		if err := m.redis.Get(ctx, revokedPrefix+c.ID).Err(); err == nil {
			return nil, ErrInvalidToken
		}
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Session{
		UserID:    userID,
		Username:  c.Username,
		Email:     c.Email,
		Role:      c.Role,
		TwoFADone: c.TwoFADone,
	}, nil
}

// Revoke adds the token to the Redis denylist for the remainder of its
// lifetime. A no-op when Redis is not configured.
func (m *Manager) Revoke(ctx context.Context, tokenString string) error {
	if m.redis == nil {
		return nil
	}

	var c claims
	if _, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return nil // Already invalid, nothing to revoke.
	}

	remaining := time.Until(c.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	if err := m.redis.Set(ctx, revokedPrefix+c.ID, "1", remaining).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// SetCookie writes the session cookie on the response.
func (m *Manager) SetCookie(w http.ResponseWriter, tokenString string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secureCooky,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
	})
}

// ClearCookie expires the session cookie immediately.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secureCooky,
		MaxAge:   -1,
	})
}

// FromRequest extracts the raw token from the session cookie or the
// Authorization header. Returns "" when neither is present.
func FromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
