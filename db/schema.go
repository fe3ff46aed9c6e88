// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Users (username is the primary key)
CREATE TABLE IF NOT EXISTS users (
    username TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Categories
CREATE TABLE IF NOT EXISTS category (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    allow_multiple_votes BOOLEAN NOT NULL DEFAULT FALSE,
    created_by TEXT NOT NULL REFERENCES users(username),
    proposed_by TEXT REFERENCES users(username),
    is_user_proposed BOOLEAN NOT NULL DEFAULT FALSE,
    status TEXT NOT NULL DEFAULT 'approved' CHECK (status IN ('pending', 'approved', 'rejected')),
    rejection_reason TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_category_status ON category(status);
CREATE INDEX IF NOT EXISTS idx_category_created_at ON category(created_at);

-- The four fixed options embedded in each category, with running tallies
CREATE TABLE IF NOT EXISTS category_option (
    category_id TEXT NOT NULL REFERENCES category(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    position INTEGER NOT NULL,
    votes INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (category_id, text)
);

-- Voter identity lists per option; mirrors the vote ledger
CREATE TABLE IF NOT EXISTS option_voter (
    category_id TEXT NOT NULL,
    option_text TEXT NOT NULL,
    username TEXT NOT NULL REFERENCES users(username),
    PRIMARY KEY (category_id, option_text, username),
    FOREIGN KEY (category_id, option_text)
        REFERENCES category_option(category_id, text) ON DELETE CASCADE
);

-- Append-only vote ledger; the UNIQUE constraint is the per-option vote guard
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL REFERENCES users(username),
    category_id TEXT NOT NULL REFERENCES category(id) ON DELETE CASCADE,
    option_text TEXT NOT NULL,
    voted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (username, category_id, option_text)
);

CREATE INDEX IF NOT EXISTS idx_vote_username ON vote(username);
CREATE INDEX IF NOT EXISTS idx_vote_category ON vote(category_id);

-- One row per (user, category): the user's voted-set and the single-vote guard
CREATE TABLE IF NOT EXISTS user_voted_category (
    username TEXT NOT NULL REFERENCES users(username),
    category_id TEXT NOT NULL REFERENCES category(id) ON DELETE CASCADE,
    PRIMARY KEY (username, category_id)
);
`
