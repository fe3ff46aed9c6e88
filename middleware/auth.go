// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/incognitas-app/server/auth"
	"github.com/incognitas-app/server/models"
)

// SessionCookie is the cookie the login handler sets and RequireAuth reads.
const SessionCookie = "token"

type contextKey string

const userContextKey contextKey = "user"

// Authenticator resolves session tokens to user accounts.
type Authenticator struct {
	db     *sql.DB
	secret string
}

// NewAuthenticator creates an authenticator backed by the users table.
func NewAuthenticator(db *sql.DB, secret string) *Authenticator {
	return &Authenticator{db: db, secret: secret}
}

// RequireAuth rejects requests without a valid session token. On success the
// resolved user is attached to the request context.
//
// The token is read from the session cookie first, then from a Bearer
// Authorization header, so both browser clients and API clients work.
func (a *Authenticator) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := auth.ParseToken(token, a.secret)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		// The account is the source of truth for role and existence; a token
		// outlives neither a deleted user nor a demotion.
		user, err := a.lookupUser(claims.Username)
		if errors.Is(err, sql.ErrNoRows) {
			ErrorResponse(w, http.StatusUnauthorized, "Unknown user")
			return
		}
		if err != nil {
			ErrorResponse(w, http.StatusInternalServerError, "Failed to resolve user")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin is RequireAuth plus an admin role check.
func (a *Authenticator) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return a.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user.Role != models.RoleAdmin {
			ErrorResponse(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	})
}

// UserFromContext returns the authenticated user attached by RequireAuth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

func (a *Authenticator) lookupUser(username string) (*models.User, error) {
	var user models.User
	err := a.db.QueryRow(`
		SELECT username, password_hash, role, created_at
		FROM users WHERE username = $1
	`, username).Scan(&user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
