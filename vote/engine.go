// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/incognitas-app/server/models"
	"github.com/incognitas-app/server/window"
)

// Engine implements the voting core: category lifecycle, the tally, and the
// append-only vote ledger. The current instant is always a parameter so
// callers inject the clock.
type Engine struct {
	db       *sql.DB
	proposal window.Window
	voting   window.Window
}

func New(db *sql.DB, proposal, voting window.Window) *Engine {
	return &Engine{db: db, proposal: proposal, voting: voting}
}

// ProposalPeriod evaluates the proposal window at the given instant.
func (e *Engine) ProposalPeriod(now time.Time) window.Info {
	return e.proposal.Info(now)
}

// VotingPeriod evaluates the voting window at the given instant.
func (e *Engine) VotingPeriod(now time.Time) window.Info {
	return e.voting.Info(now)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

const categoryColumns = `id, title, description, is_active, allow_multiple_votes,
	created_by, proposed_by, is_user_proposed, status, rejection_reason,
	created_at, updated_at`

func scanCategory(row interface{ Scan(dest ...interface{}) error }) (*models.Category, error) {
	var c models.Category
	var description, proposedBy, rejectionReason sql.NullString

	err := row.Scan(
		&c.ID, &c.Title, &description, &c.IsActive, &c.AllowMultipleVotes,
		&c.CreatedBy, &proposedBy, &c.IsUserProposed, &c.Status, &rejectionReason,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Description = description.String
	if proposedBy.Valid {
		c.ProposedBy = &proposedBy.String
	}
	if rejectionReason.Valid {
		c.RejectionReason = &rejectionReason.String
	}
	return &c, nil
}

// loadOptions fetches a category's four options in display order.
func loadOptions(q querier, categoryID string, withVoters bool) ([]models.Option, error) {
	rows, err := q.Query(`
		SELECT text, votes FROM category_option
		WHERE category_id = $1
		ORDER BY position
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.Text, &opt.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	if !withVoters {
		return options, nil
	}

	for i := range options {
		voters, err := loadVoters(q, categoryID, options[i].Text)
		if err != nil {
			return nil, err
		}
		options[i].Voters = voters
	}
	return options, nil
}

func loadVoters(q querier, categoryID, optionText string) ([]string, error) {
	rows, err := q.Query(`
		SELECT username FROM option_voter
		WHERE category_id = $1 AND option_text = $2
		ORDER BY username
	`, categoryID, optionText)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	voters := []string{}
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, username)
	}
	return voters, rows.Err()
}

func (e *Engine) getCategory(q querier, id string, withVoters bool) (*models.Category, error) {
	c, err := scanCategory(q.QueryRow(`SELECT `+categoryColumns+` FROM category WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	c.Options, err = loadOptions(q, id, withVoters)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetCategory returns a category with tallies but without voter identities.
func (e *Engine) GetCategory(id string) (*models.Category, error) {
	return e.getCategory(e.db, id, false)
}

// GetCategoryWithVoters returns a category including per-option voter lists.
func (e *Engine) GetCategoryWithVoters(id string) (*models.Category, error) {
	return e.getCategory(e.db, id, true)
}

// votableWhere selects categories open to voters: active, not rejected, and
// either admin-created or an approved proposal.
const votableWhere = `is_active AND status <> 'rejected' AND (NOT is_user_proposed OR status = 'approved')`

// ListVotableCategories returns votable categories in creation order, oldest
// first - the roadmap traversal order. Voter identities are stripped.
func (e *Engine) ListVotableCategories() ([]models.Category, error) {
	return e.listCategories(`SELECT `+categoryColumns+` FROM category WHERE `+votableWhere+` ORDER BY created_at ASC, id ASC`)
}

// NextUnvotedCategory returns the oldest votable category the user has not
// voted in, or nil when the user has worked through the whole roadmap.
func (e *Engine) NextUnvotedCategory(username string) (*models.Category, error) {
	row := e.db.QueryRow(`
		SELECT `+categoryColumns+` FROM category
		WHERE `+votableWhere+`
		  AND NOT EXISTS (
			SELECT 1 FROM user_voted_category uvc
			WHERE uvc.username = $1 AND uvc.category_id = category.id
		  )
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`, username)

	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load next category: %w", err)
	}

	c.Options, err = loadOptions(e.db, c.ID, false)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// HasVoted reports whether a ledger entry exists for (user, category).
func (e *Engine) HasVoted(username, categoryID string) (bool, error) {
	var exists bool
	err := e.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM vote WHERE username = $1 AND category_id = $2)
	`, username, categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vote existence: %w", err)
	}
	return exists, nil
}

// VotedCategoryIDs returns the user's voted-set.
func (e *Engine) VotedCategoryIDs(username string) ([]string, error) {
	rows, err := e.db.Query(`
		SELECT category_id FROM user_voted_category
		WHERE username = $1
		ORDER BY category_id
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query voted categories: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan voted category: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (e *Engine) listCategories(query string, args ...interface{}) ([]models.Category, error) {
	rows, err := e.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	for i := range categories {
		categories[i].Options, err = loadOptions(e.db, categories[i].ID, false)
		if err != nil {
			return nil, err
		}
	}
	return categories, nil
}
