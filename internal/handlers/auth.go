// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"craftpress/internal/middleware"
	"craftpress/internal/store"
	"craftpress/internal/token"
)

// totpIssuer is the issuer shown in authenticator apps.
const totpIssuer = "CraftPress"

// Auth groups the authentication API handlers.
type Auth struct {
	users  *store.UserStore
	tokens *token.Manager
}

// NewAuth creates the Auth handler group.
func NewAuth(users *store.UserStore, tokens *token.Manager) *Auth {
	return &Auth{users: users, tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login checks credentials and issues a JWT. When the user has TOTP
// enabled the token is interim (2FA not yet done) and the response asks
// for a code; otherwise the token is fully authenticated.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	if err := a.users.TouchLastLogin(user.ID); err != nil {
		slog.Warn("touch last_login failed", "error", err, "user", user.Username)
	}

	twoFADone := !user.TOTPEnabled
	signed, err := a.tokens.Issue(user, twoFADone)
	if err != nil {
		slog.Error("token issue failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	a.tokens.SetCookie(w, signed)

	respondJSON(w, http.StatusOK, map[string]any{
		"token":        signed,
		"requires_2fa": !twoFADone,
		"user": map[string]any{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// Logout revokes the current token and clears the session cookie.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if raw := token.FromRequest(r); raw != "" {
		if err := a.tokens.Revoke(r.Context(), raw); err != nil {
			slog.Warn("token revoke failed", "error", err)
		}
	}
	a.tokens.ClearCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// TwoFASetup generates a fresh TOTP secret for the logged-in user and
// returns it with a QR provisioning image. The secret is inactive until
// the first code is verified.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	if err := a.users.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"secret":  key.Secret(),
		"qr_png":  base64.StdEncoding.EncodeToString(qrPNG),
		"otpauth": key.URL(),
	})
}

type twoFAVerifyRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// TwoFAVerify validates a TOTP code. On first-time verification it
// enables TOTP for the account. A fresh fully-authenticated token is
// issued either way.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req twoFAVerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := a.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if user.TOTPSecret == nil {
		respondError(w, http.StatusBadRequest, "Two-factor authentication is not set up.")
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		respondError(w, http.StatusUnauthorized, "Invalid code.")
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			respondError(w, http.StatusInternalServerError, "Internal server error.")
			return
		}
	}

	// Replace the interim token with a fully authenticated one.
	if raw := token.FromRequest(r); raw != "" {
		if err := a.tokens.Revoke(r.Context(), raw); err != nil {
			slog.Warn("interim token revoke failed", "error", err)
		}
	}
	signed, err := a.tokens.Issue(user, true)
	if err != nil {
		slog.Error("token issue failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	a.tokens.SetCookie(w, signed)

	respondJSON(w, http.StatusOK, map[string]any{
		"token": signed,
		"user": map[string]any{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}
