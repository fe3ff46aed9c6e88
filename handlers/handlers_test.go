// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/incognitas-app/server/cliparse"
	"github.com/incognitas-app/server/middleware"
	"github.com/incognitas-app/server/models"
	"github.com/incognitas-app/server/testutil"
	"github.com/incognitas-app/server/vote"
)

// testEnv bundles the pieces handler tests need: a fresh database, the engine
// built from the test config's open windows, and the authenticator.
type testEnv struct {
	db     *sql.DB
	cfg    cliparse.Config
	engine *vote.Engine
	authn  *middleware.Authenticator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	return &testEnv{
		db:     db,
		cfg:    cfg,
		engine: vote.New(db, cfg.ProposalWindow(), cfg.VotingWindow()),
		authn:  middleware.NewAuthenticator(db, cfg.JWTSecret),
	}
}

// asUser returns a request carrying a valid session for the given account.
// The account must already exist.
func asUser(t *testing.T, req *http.Request, username, role string) *http.Request {
	t.Helper()
	req.Header.Set("Authorization", "Bearer "+testutil.AuthToken(t, username, role))
	return req
}

func (env *testEnv) createUser(t *testing.T, username string) string {
	t.Helper()
	testutil.CreateTestUser(t, env.db, username, models.RoleUser)
	return username
}

func (env *testEnv) createAdmin(t *testing.T, username string) string {
	t.Helper()
	testutil.CreateTestUser(t, env.db, username, models.RoleAdmin)
	return username
}
