// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/studio-go/internal/auth"
	"github.com/olegiv/studio-go/internal/config"
	"github.com/olegiv/studio-go/internal/middleware"
	"github.com/olegiv/studio-go/internal/render"
)

// AuthHandler handles admin authentication. The site has a single operator
// account configured through the environment; there is no user table.
type AuthHandler struct {
	cfg             *config.Config
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		cfg:             cfg,
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// LoginForm renders the login page. Already-authenticated admins are sent to
// the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.IsAuthenticated(h.sessionManager, r) {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{Title: "Вход"}); err != nil {
		logAndInternalError(w, "login render failed", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, "Укажите email и пароль")
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			flashError(w, r, h.renderer, redirectLogin,
				fmt.Sprintf("Аккаунт заблокирован, попробуйте через %s", formatDuration(remaining)))
			return
		}
	}

	if !h.checkCredentials(email, password) {
		slog.Debug("invalid login attempt", "email", email)
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
				flashError(w, r, h.renderer, redirectLogin,
					fmt.Sprintf("Слишком много попыток, аккаунт заблокирован на %s", formatDuration(lockDuration)))
				return
			}
		}
		flashError(w, r, h.renderer, redirectLogin, "Неверный email или пароль")
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	// Rotate the session token on privilege change
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renew failed", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyAdminEmail, email)

	slog.Info("admin logged in", "email", email)
	http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
}

// Logout destroys the session and returns to the public site.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
}

// checkCredentials verifies the email and password against the configured
// admin account. The email comparison is constant-time to match the
// password check.
func (h *AuthHandler) checkCredentials(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(h.cfg.AdminEmail)) == 1

	valid, err := auth.CheckPassword(password, h.cfg.AdminPasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		return false
	}

	return emailOK && valid
}

// formatDuration renders a duration for flash messages, in whole minutes.
func formatDuration(d time.Duration) string {
	minutes := int(d.Round(time.Minute).Minutes())
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d мин", minutes)
}
