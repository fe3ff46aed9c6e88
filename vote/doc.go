// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package vote implements the voting core: the category lifecycle state machine,
the tally engine, and the append-only vote ledger. The HTTP layer is a thin
adapter over this package.

# Engine

An Engine wraps a *sql.DB and the two configured time windows:

	engine := vote.New(db, cfg.ProposalWindow(), cfg.VotingWindow())

Every operation that depends on wall-clock time takes the current instant as a
parameter; tests pass fixed instants.

# Category Lifecycle

A category's status is pending, approved, or rejected, with an orthogonal
isActive flag. Admin-created categories start approved. User proposals start
pending and inactive, and only move forward:

	pending ──ApproveProposal──> approved (active)
	pending ──RejectProposal──> rejected (inactive)

Approve and reject are single conditional updates matching only pending user
proposals, so the transitions are one-directional by construction. EditCategory
may change title, description, isActive, and allowMultipleVotes at any time;
the four fixed options and their tallies are immutable.

A category is votable iff it is active, not rejected, and either admin-created
or an approved proposal.

# Tally Engine

CastVote validates the voting window, votability, and the option label, then
appends a ledger entry and updates the tally in one transaction. Duplicate
protection is carried by the schema, not by check-then-act:

  - single-vote categories: the voted-set primary key (username, category_id)
    rejects the second cast -> ErrAlreadyVoted
  - multi-vote categories: the ledger's UNIQUE (username, category_id,
    option_text) rejects a repeat for the same option ->
    ErrAlreadyVotedThisOption (one vote per option per user)

Tally counters increment in place (votes = votes + 1), never via
read-modify-write, so concurrent votes for the same category by different
users cannot lose updates.

# Vote Ledger

The vote table is append-only. Only DeleteCategory removes rows, as part of
the cascade: ledger entries, option voter lists, voted-set rows, options, then
the category, all in one transaction with idempotent steps.

# Errors

Domain failures are sentinel errors (ErrVotingClosed, ErrCategoryNotVotable,
ErrOptionNotFound, ErrAlreadyVoted, ErrAlreadyVotedThisOption, ErrNotFound,
ErrNotAProposal) plus ValidationError for malformed input. Storage faults are
wrapped with %w and stay distinct from the domain taxonomy.
*/
package vote
