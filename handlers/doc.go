// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP endpoints.

Handlers are grouped by surface:

  - AuthHandler: register, login, logout, current user
  - VotingHandler: votable category listing, roadmap traversal, vote casting,
    vote history
  - ProposalHandler: period info, proposal submission and listing, admin
    approve/reject
  - AdminHandler: category CRUD, results, stats, user management

Each handler is a thin adapter: it parses and validates the request, calls the
vote engine (or runs account SQL directly), and maps engine errors onto HTTP
statuses via respondVoteError. Domain rules live in the vote package, not
here.

Authentication and role checks are applied by the router through
middleware.Authenticator; handlers read the caller with
middleware.UserFromContext.
*/
package handlers
