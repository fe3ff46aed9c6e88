// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Incognitas API server.

Incognitas is a small-group voting service. Every category is a vote between
the same four fixed options; users work through the votable categories like a
roadmap, and may propose new categories for admin review while the proposal
window is open.

# Starting the Server

The server is configured through environment variables (a .env file is loaded
if present) or CLI flags:

	DATABASE_URL=votes.db JWT_SECRET=... go run .

Or with flags:

	go run . -p 4000 -d votes.db -t sqlite

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): Secret for session token signing
  - PROPOSAL_START / PROPOSAL_END (-proposal-start / -proposal-end):
    proposal window bounds, RFC 3339
  - VOTING_START / VOTING_END (-voting-start / -voting-end):
    voting window bounds, RFC 3339

Optional settings:

  - PORT (-p): Server port (default: 4000)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - TOKEN_TTL (-token-ttl): Session lifetime (default: 72h)
  - ADMIN_USERNAME / ADMIN_PASSWORD: seed an admin account at startup

# Architecture

The server uses a handler-based architecture with dependency injection:

  - vote: the voting core - category lifecycle, tally engine, vote ledger
  - handlers: HTTP request handlers (auth, voting, proposals, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Authentication, CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Password hashing and session tokens
  - window: Time window predicates
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
