// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/incognitas-app/server/auth"
	"github.com/incognitas-app/server/cliparse"
	"github.com/incognitas-app/server/db"
)

// TestJWTSecret signs session tokens in tests.
const TestJWTSecret = "test-jwt-secret"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// Each call gets its own database; it lives until the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A single connection keeps the in-memory database alive and serializes
	// writers the way SQLite expects.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration with both time windows
// open around the present.
func GetTestConfig() cliparse.Config {
	now := time.Now()
	return cliparse.Config{
		Port:          4000,
		DatabaseURL:   "file:incognitas-test?mode=memory",
		DatabaseType:  "sqlite",
		JWTSecret:     TestJWTSecret,
		TokenTTL:      time.Hour,
		ProposalStart: now.Add(-24 * time.Hour),
		ProposalEnd:   now.Add(24 * time.Hour),
		VotingStart:   now.Add(-24 * time.Hour),
		VotingEnd:     now.Add(24 * time.Hour),
	}
}

// CreateTestUser inserts a user with password "password123".
func CreateTestUser(t *testing.T, conn *sql.DB, username, role string) {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO users (username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4)
	`, username, hash, role, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
}

// AuthToken issues a session token for the given user.
func AuthToken(t *testing.T, username, role string) string {
	t.Helper()

	token, err := auth.GenerateToken(username, role, TestJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
