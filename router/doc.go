// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Incognitas API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Authentication:

	POST /api/auth/register - Create account and session
	POST /api/auth/login    - Create session
	POST /api/auth/logout   - Clear session cookie
	GET  /api/auth/me       - Current user (authenticated)

Voting (authenticated):

	GET  /api/votes/categories           - Votable categories with hasVoted
	GET  /api/votes/categories/{id}      - One category with hasVoted
	POST /api/votes/categories/{id}/vote - Cast a vote
	GET  /api/votes/next                 - Next unvoted category (204 when done)
	GET  /api/votes/my-votes             - Own vote history

Proposals (authenticated):

	GET  /api/proposals/period - Proposal and voting window info
	POST /api/proposals        - Submit a proposal
	GET  /api/proposals/mine   - Own proposals

Admin:

	GET    /api/admin/proposals               - List proposals (?status= filter)
	POST   /api/admin/proposals/{id}/approve  - Approve pending proposal
	POST   /api/admin/proposals/{id}/reject   - Reject pending proposal
	POST   /api/admin/categories              - Create category
	GET    /api/admin/categories              - All categories
	GET    /api/admin/categories/{id}         - Category with votes and voters
	PUT    /api/admin/categories/{id}         - Partial update
	DELETE /api/admin/categories/{id}         - Cascade delete
	GET    /api/admin/categories/{id}/results - Per-option results
	GET    /api/admin/stats                   - Dashboard aggregates
	GET    /api/admin/users                   - All users with voted categories
	PUT    /api/admin/users/{username}/role   - Promote/demote

# Handler Initialization

The router builds the vote engine from the configured time windows and wires
it into the handlers:

	engine := vote.New(db, cfg.ProposalWindow(), cfg.VotingWindow())
	authn := middleware.NewAuthenticator(db, cfg.JWTSecret)

Authenticated routes are wrapped with authn.RequireAuth, admin routes with
authn.RequireAdmin.
*/
package router
