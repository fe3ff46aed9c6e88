// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/incognitas-app/server/middleware"
	"github.com/incognitas-app/server/models"
	"github.com/incognitas-app/server/testutil"
)

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	h := NewAuthHandler(env.db, env.cfg)

	t.Run("success", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/auth/register",
			models.RegisterRequest{Username: "alice", Password: "password123"}, nil)
		w := httptest.NewRecorder()

		h.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.AuthResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Token == "" {
			t.Error("Expected a session token")
		}
		if resp.User.Username != "alice" || resp.User.Role != models.RoleUser {
			t.Errorf("Unexpected user: %+v", resp.User)
		}

		cookie := sessionCookie(w)
		if cookie == nil || cookie.Value != resp.Token {
			t.Error("Expected session cookie to carry the token")
		}
		if cookie != nil && !cookie.HttpOnly {
			t.Error("Expected HttpOnly session cookie")
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/auth/register",
			models.RegisterRequest{Username: "alice", Password: "different456"}, nil)
		w := httptest.NewRecorder()

		h.Register(w, req)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("username is trimmed before claiming", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/auth/register",
			models.RegisterRequest{Username: "  alice  ", Password: "password123"}, nil)
		w := httptest.NewRecorder()

		h.Register(w, req)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("short username", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/auth/register",
			models.RegisterRequest{Username: "ab", Password: "password123"}, nil)
		w := httptest.NewRecorder()

		h.Register(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("short password", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/auth/register",
			models.RegisterRequest{Username: "bob", Password: "12345"}, nil)
		w := httptest.NewRecorder()

		h.Register(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	h := NewAuthHandler(env.db, env.cfg)
	env.createUser(t, "carol")

	t.Run("success", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/auth/login",
			models.LoginRequest{Username: "carol", Password: "password123"}, nil)
		w := httptest.NewRecorder()

		h.Login(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.AuthResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Token == "" || resp.User.Username != "carol" {
			t.Errorf("Unexpected response: %+v", resp)
		}
		if resp.User.VotedCategories == nil {
			t.Error("Expected votedCategories to be present (empty list)")
		}
		if sessionCookie(w) == nil {
			t.Error("Expected session cookie")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/auth/login",
			models.LoginRequest{Username: "carol", Password: "wrong-password"}, nil)
		w := httptest.NewRecorder()

		h.Login(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("unknown user", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/auth/login",
			models.LoginRequest{Username: "nobody", Password: "password123"}, nil)
		w := httptest.NewRecorder()

		h.Login(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	h := NewAuthHandler(env.db, env.cfg)
	admin := env.createAdmin(t, "admin")
	user := env.createUser(t, "dave")

	// Vote once so votedCategories has content.
	c, err := env.engine.CreateAdminCategory("A category", "", false, true, admin, time.Now())
	if err != nil {
		t.Fatalf("CreateAdminCategory failed: %v", err)
	}
	if _, err := env.engine.CastVote(user, c.ID, "Marco", time.Now()); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	handler := env.authn.RequireAuth(h.Me)

	req := asUser(t, testutil.MakeRequest("GET", "/api/auth/me", nil, nil), user, models.RoleUser)
	w := httptest.NewRecorder()

	handler(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.User
	testutil.AssertJSON(t, w, &resp)
	if resp.Username != "dave" {
		t.Errorf("Expected username 'dave', got '%s'", resp.Username)
	}
	if len(resp.VotedCategories) != 1 || resp.VotedCategories[0] != c.ID {
		t.Errorf("Expected votedCategories [%s], got %v", c.ID, resp.VotedCategories)
	}
	if resp.PasswordHash != "" {
		t.Error("Password hash must never be serialized")
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	h := NewAuthHandler(env.db, env.cfg)

	req := testutil.MakeRequest("POST", "/api/auth/logout", nil, nil)
	w := httptest.NewRecorder()

	h.Logout(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	cookie := sessionCookie(w)
	if cookie == nil || cookie.MaxAge >= 0 || cookie.Value != "" {
		t.Errorf("Expected expired empty session cookie, got %+v", cookie)
	}
}
