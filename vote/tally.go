// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/incognitas-app/server/models"
)

func votableState(isActive, isUserProposed bool, status string) bool {
	return isActive && status != models.StatusRejected &&
		(!isUserProposed || status == models.StatusApproved)
}

// CastVote records one vote for (username, categoryID, optionText) at the
// given instant and returns the updated category.
//
// The write path is a single transaction. The voted-set primary key
// (username, category_id) guards single-vote categories and the ledger's
// UNIQUE (username, category_id, option_text) guards multi-vote ones, so two
// concurrent double-submits can never both commit; the loser's constraint
// violation surfaces as the matching conflict error. The tally increments in
// place so concurrent votes from distinct users never lose updates.
func (e *Engine) CastVote(username, categoryID, optionText string, now time.Time) (*models.Category, error) {
	if !e.voting.IsOpen(now) {
		return nil, ErrVotingClosed
	}

	tx, err := e.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var isActive, allowMultiple, isUserProposed bool
	var status string
	err = tx.QueryRow(`
		SELECT is_active, allow_multiple_votes, is_user_proposed, status
		FROM category WHERE id = $1
	`, categoryID).Scan(&isActive, &allowMultiple, &isUserProposed, &status)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	if !votableState(isActive, isUserProposed, status) {
		return nil, ErrCategoryNotVotable
	}

	var optionExists bool
	err = tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM category_option WHERE category_id = $1 AND text = $2)
	`, categoryID, optionText).Scan(&optionExists)
	if err != nil {
		return nil, fmt.Errorf("failed to check option: %w", err)
	}
	if !optionExists {
		return nil, ErrOptionNotFound
	}

	if allowMultiple {
		// Multi-vote: the voted-set add is an idempotent set-add; the ledger
		// constraint below rejects a repeat vote for the same option.
		_, err = tx.Exec(`
			INSERT INTO user_voted_category (username, category_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, username, categoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to record voted category: %w", err)
		}
	} else {
		_, err = tx.Exec(`
			INSERT INTO user_voted_category (username, category_id)
			VALUES ($1, $2)
		`, username, categoryID)
		if isUniqueViolation(err) {
			return nil, ErrAlreadyVoted
		}
		if err != nil {
			return nil, fmt.Errorf("failed to record voted category: %w", err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO vote (id, username, category_id, option_text, voted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), username, categoryID, optionText, now)
	if isUniqueViolation(err) {
		return nil, ErrAlreadyVotedThisOption
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert vote: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE category_option SET votes = votes + 1
		WHERE category_id = $1 AND text = $2
	`, categoryID, optionText)
	if err != nil {
		return nil, fmt.Errorf("failed to increment tally: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO option_voter (category_id, option_text, username)
		VALUES ($1, $2, $3)
	`, categoryID, optionText, username)
	if err != nil {
		return nil, fmt.Errorf("failed to record voter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit vote: %w", err)
	}

	return e.GetCategory(categoryID)
}

// GetResults returns the tally per option, voter identities included.
func (e *Engine) GetResults(categoryID string) (models.Results, error) {
	c, err := e.GetCategoryWithVoters(categoryID)
	if err != nil {
		return nil, err
	}

	results := models.Results{}
	for _, opt := range c.Options {
		results[opt.Text] = models.OptionResult{Votes: opt.Votes, Voters: opt.Voters}
	}
	return results, nil
}

// VotesByUser returns a user's ledger entries joined with category titles,
// newest first.
func (e *Engine) VotesByUser(username string) ([]models.VoteWithCategory, error) {
	rows, err := e.db.Query(`
		SELECT v.id, v.username, v.category_id, v.option_text, v.voted_at, c.title
		FROM vote v
		JOIN category c ON c.id = v.category_id
		WHERE v.username = $1
		ORDER BY v.voted_at DESC, v.id
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.VoteWithCategory{}
	for rows.Next() {
		var v models.VoteWithCategory
		if err := rows.Scan(&v.ID, &v.Username, &v.CategoryID, &v.Option, &v.VotedAt, &v.CategoryTitle); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// VotesByCategory returns a category's ledger entries, newest first.
func (e *Engine) VotesByCategory(categoryID string) ([]models.Vote, error) {
	rows, err := e.db.Query(`
		SELECT id, username, category_id, option_text, voted_at
		FROM vote
		WHERE category_id = $1
		ORDER BY voted_at DESC, id
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.Username, &v.CategoryID, &v.Option, &v.VotedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// Stats aggregates the admin dashboard numbers: totals, the five most voted
// categories, and the ten most recent votes.
func (e *Engine) Stats() (models.Stats, error) {
	var s models.Stats

	err := e.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM category),
			(SELECT COUNT(*) FROM category WHERE is_active),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM vote)
	`).Scan(&s.TotalCategories, &s.ActiveCategories, &s.TotalUsers, &s.TotalVotes)
	if err != nil {
		return s, fmt.Errorf("failed to query totals: %w", err)
	}

	rows, err := e.db.Query(`
		SELECT c.id, c.title, COALESCE(SUM(o.votes), 0) AS total
		FROM category c
		LEFT JOIN category_option o ON o.category_id = c.id
		GROUP BY c.id, c.title
		ORDER BY total DESC, c.id
		LIMIT 5
	`)
	if err != nil {
		return s, fmt.Errorf("failed to query top categories: %w", err)
	}
	defer rows.Close()

	s.TopCategories = []models.CategoryVoteCount{}
	for rows.Next() {
		var top models.CategoryVoteCount
		if err := rows.Scan(&top.ID, &top.Title, &top.TotalVotes); err != nil {
			return s, fmt.Errorf("failed to scan top category: %w", err)
		}
		s.TopCategories = append(s.TopCategories, top)
	}
	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("failed to read top categories: %w", err)
	}

	recent, err := e.db.Query(`
		SELECT v.id, v.username, v.category_id, v.option_text, v.voted_at, c.title
		FROM vote v
		JOIN category c ON c.id = v.category_id
		ORDER BY v.voted_at DESC, v.id
		LIMIT 10
	`)
	if err != nil {
		return s, fmt.Errorf("failed to query recent votes: %w", err)
	}
	defer recent.Close()

	s.RecentVotes = []models.VoteWithCategory{}
	for recent.Next() {
		var v models.VoteWithCategory
		if err := recent.Scan(&v.ID, &v.Username, &v.CategoryID, &v.Option, &v.VotedAt, &v.CategoryTitle); err != nil {
			return s, fmt.Errorf("failed to scan recent vote: %w", err)
		}
		s.RecentVotes = append(s.RecentVotes, v)
	}
	return s, recent.Err()
}
