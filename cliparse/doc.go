// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from CLI flags and environment
variables. Flags take precedence; env variables are the fallback.

# Settings

Required:

  - DATABASE_URL (-d): connection string (postgres URL or sqlite file path)
  - JWT_SECRET (--jwt-secret): HMAC secret for session tokens
  - PROPOSAL_START / PROPOSAL_END (--proposal-start / --proposal-end):
    proposal window bounds, RFC 3339
  - VOTING_START / VOTING_END (--voting-start / --voting-end):
    voting window bounds, RFC 3339

Optional:

  - PORT (-p): server port (default 4000)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - TOKEN_TTL (--token-ttl): session lifetime (default 72h)

# Windows

The two time windows are independent: the proposal window gates user proposal
creation, the voting window gates vote casting. ProposalWindow and VotingWindow
return them as window.Window values for injection into the vote engine.
Each window's end must not precede its start; parsing fails otherwise.
*/
package cliparse
