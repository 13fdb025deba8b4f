// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// caching, and request context handling.
package middleware

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Session keys for storing admin login state.
const (
	SessionKeyAdminEmail = "admin_email"
)

// Auth creates middleware that requires an authenticated admin session.
// Unauthenticated requests are redirected to the login page.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := sm.GetString(r.Context(), SessionKeyAdminEmail)
			if email == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IsAuthenticated reports whether the request carries an admin session.
func IsAuthenticated(sm *scs.SessionManager, r *http.Request) bool {
	return sm.GetString(r.Context(), SessionKeyAdminEmail) != ""
}
