// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package token

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"craftpress/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       uuid.New(),
		Username: "admin",
		Email:    "admin@example.com",
		Role:     models.RoleAdmin,
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour, nil, false)
	user := testUser()

	signed, err := m.Issue(user, true)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	sess, err := m.Verify(context.Background(), signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if sess.UserID != user.ID {
		t.Errorf("UserID: got %s, want %s", sess.UserID, user.ID)
	}
	if sess.Username != user.Username || sess.Email != user.Email {
		t.Errorf("identity mismatch: %+v", sess)
	}
	if sess.Role != string(models.RoleAdmin) {
		t.Errorf("Role: got %q", sess.Role)
	}
	if !sess.TwoFADone {
		t.Error("TwoFADone should survive the round trip")
	}
}

func TestVerifyInterimToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour, nil, false)

	signed, err := m.Issue(testUser(), false)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	sess, err := m.Verify(context.Background(), signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if sess.TwoFADone {
		t.Error("interim token must carry TwoFADone=false")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour, nil, false)
	verifier := NewManager("secret-b", time.Hour, nil, false)

	signed, err := issuer.Issue(testUser(), true)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Verify(context.Background(), signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, nil, false)

	signed, err := m.Issue(testUser(), true)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := m.Verify(context.Background(), signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour, nil, false)
	if _, err := m.Verify(context.Background(), "not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := FromRequest(r); got != "" {
		t.Errorf("bare request: got %q, want empty", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	if got := FromRequest(r); got != "from-cookie" {
		t.Errorf("cookie: got %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer from-header")
	if got := FromRequest(r); got != "from-header" {
		t.Errorf("header: got %q", got)
	}

	// Cookie wins over the header when both are present.
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	r.Header.Set("Authorization", "Bearer from-header")
	if got := FromRequest(r); got != "from-cookie" {
		t.Errorf("both: got %q, want cookie value", got)
	}
}

func TestClearCookie(t *testing.T) {
	m := NewManager("test-secret", time.Hour, nil, false)
	rec := httptest.NewRecorder()
	m.ClearCookie(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	if cookies[0].MaxAge != -1 || cookies[0].Value != "" {
		t.Errorf("cookie not cleared: %+v", cookies[0])
	}
}
