// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The schema is portable across PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite):
timestamps default to CURRENT_TIMESTAMP and all values are bound from Go code.

# Tables

  - users: accounts, username is the primary key
  - category: votable propositions and their lifecycle state
  - category_option: the four fixed options per category with running tallies
  - option_voter: voter identity list per option
  - vote: the append-only vote ledger
  - user_voted_category: per-user voted-set, one row per (user, category)

# Relationships

	users 1──* category (created_by / proposed_by)
	category 1──4 category_option
	category_option 1──* option_voter
	category 1──* vote
	users 1──* user_voted_category

# Uniqueness guarantees

Two constraints carry the double-vote protection:

  - user_voted_category's primary key (username, category_id) makes the second
    vote in a single-vote category fail at insert time
  - vote's UNIQUE (username, category_id, option_text) makes a repeat vote for
    the same option fail in multi-vote categories

A constraint violation on either is reported to the caller as a conflict,
never treated as a fatal error.
*/
package db
