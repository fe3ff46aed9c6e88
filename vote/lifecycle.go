// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/incognitas-app/server/models"
)

func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ValidationError("title is required")
	}
	if len(trimmed) > models.MaxTitleLen {
		return "", ValidationError(fmt.Sprintf("title must be at most %d characters", models.MaxTitleLen))
	}
	return trimmed, nil
}

func validateDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	if len(trimmed) > models.MaxDescriptionLen {
		return "", ValidationError(fmt.Sprintf("description must be at most %d characters", models.MaxDescriptionLen))
	}
	return trimmed, nil
}

// CreateAdminCategory creates an admin-authored category. It bypasses the
// proposal workflow entirely: status is approved from the start.
func (e *Engine) CreateAdminCategory(title, description string, allowMultipleVotes, isActive bool, createdBy string, now time.Time) (*models.Category, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	description, err = validateDescription(description)
	if err != nil {
		return nil, err
	}

	c := &models.Category{
		ID:                 uuid.NewString(),
		Title:              title,
		Description:        description,
		IsActive:           isActive,
		AllowMultipleVotes: allowMultipleVotes,
		CreatedBy:          createdBy,
		IsUserProposed:     false,
		Status:             models.StatusApproved,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := e.insertCategory(c); err != nil {
		return nil, err
	}
	return e.GetCategory(c.ID)
}

// ProposeCategory creates a user proposal. Only permitted while the proposal
// window is open; the result is pending and inactive until an admin approves.
func (e *Engine) ProposeCategory(username, title, description string, now time.Time) (*models.Category, error) {
	if !e.proposal.IsOpen(now) {
		return nil, ErrProposalWindowClosed
	}

	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	description, err = validateDescription(description)
	if err != nil {
		return nil, err
	}

	c := &models.Category{
		ID:                 uuid.NewString(),
		Title:              title,
		Description:        description,
		IsActive:           false,
		AllowMultipleVotes: false,
		CreatedBy:          username,
		ProposedBy:         &username,
		IsUserProposed:     true,
		Status:             models.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := e.insertCategory(c); err != nil {
		return nil, err
	}
	return e.GetCategory(c.ID)
}

// insertCategory writes the category row and its four fixed options in one
// transaction.
func (e *Engine) insertCategory(c *models.Category) error {
	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var proposedBy sql.NullString
	if c.ProposedBy != nil {
		proposedBy = sql.NullString{String: *c.ProposedBy, Valid: true}
	}

	_, err = tx.Exec(`
		INSERT INTO category (id, title, description, is_active, allow_multiple_votes,
			created_by, proposed_by, is_user_proposed, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, c.ID, c.Title, c.Description, c.IsActive, c.AllowMultipleVotes,
		c.CreatedBy, proposedBy, c.IsUserProposed, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	for i, text := range models.FixedOptions {
		_, err = tx.Exec(`
			INSERT INTO category_option (category_id, text, position, votes)
			VALUES ($1, $2, $3, 0)
		`, c.ID, text, i)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category: %w", err)
	}
	return nil
}

// ApproveProposal moves a pending user proposal to approved and activates it.
// The transition is a single conditional update: anything not currently a
// pending proposal is left untouched and reported as ErrNotAProposal.
func (e *Engine) ApproveProposal(id string, now time.Time) (*models.Category, error) {
	res, err := e.db.Exec(`
		UPDATE category
		SET status = 'approved', is_active = TRUE, updated_at = $1
		WHERE id = $2 AND is_user_proposed AND status = 'pending'
	`, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to approve proposal: %w", err)
	}

	if err := e.checkTransitioned(res, id); err != nil {
		return nil, err
	}
	return e.GetCategory(id)
}

// RejectProposal moves a pending user proposal to rejected, recording an
// optional reason. Rejected proposals stay inactive.
func (e *Engine) RejectProposal(id, reason string, now time.Time) (*models.Category, error) {
	rejectionReason := sql.NullString{String: strings.TrimSpace(reason), Valid: strings.TrimSpace(reason) != ""}

	res, err := e.db.Exec(`
		UPDATE category
		SET status = 'rejected', is_active = FALSE, rejection_reason = $1, updated_at = $2
		WHERE id = $3 AND is_user_proposed AND status = 'pending'
	`, rejectionReason, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reject proposal: %w", err)
	}

	if err := e.checkTransitioned(res, id); err != nil {
		return nil, err
	}
	return e.GetCategory(id)
}

// checkTransitioned distinguishes a missing category from one that exists but
// is not a pending proposal, after a conditional lifecycle update matched no
// rows.
func (e *Engine) checkTransitioned(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	if err := e.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM category WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check category existence: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrNotAProposal
}

// EditCategory applies partial updates to a category's mutable fields. The
// four options and their accumulated votes are immutable and never reset.
func (e *Engine) EditCategory(id string, upd models.UpdateCategoryRequest, now time.Time) (*models.Category, error) {
	c, err := e.GetCategory(id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		title, err := validateTitle(*upd.Title)
		if err != nil {
			return nil, err
		}
		c.Title = title
	}
	if upd.Description != nil {
		description, err := validateDescription(*upd.Description)
		if err != nil {
			return nil, err
		}
		c.Description = description
	}
	if upd.IsActive != nil {
		c.IsActive = *upd.IsActive
	}
	if upd.AllowMultipleVotes != nil {
		c.AllowMultipleVotes = *upd.AllowMultipleVotes
	}

	_, err = e.db.Exec(`
		UPDATE category
		SET title = $1, description = $2, is_active = $3, allow_multiple_votes = $4, updated_at = $5
		WHERE id = $6
	`, c.Title, c.Description, c.IsActive, c.AllowMultipleVotes, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return e.GetCategory(id)
}

// DeleteCategory removes a category and cascades: ledger entries, voter
// lists, voted-set rows, option rows, then the category itself, all in one
// transaction. The cascade is a required side effect, not optional cleanup.
func (e *Engine) DeleteCategory(id string) error {
	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM category WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check category existence: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	// Each step is idempotent; dependents go first so foreign keys hold.
	steps := []string{
		`DELETE FROM vote WHERE category_id = $1`,
		`DELETE FROM option_voter WHERE category_id = $1`,
		`DELETE FROM user_voted_category WHERE category_id = $1`,
		`DELETE FROM category_option WHERE category_id = $1`,
		`DELETE FROM category WHERE id = $1`,
	}
	for _, step := range steps {
		if _, err := tx.Exec(step, id); err != nil {
			return fmt.Errorf("failed to cascade delete: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// ListProposals returns user proposals matching the status filter ("pending",
// "approved", "rejected", or "all") together with per-status counts.
func (e *Engine) ListProposals(filter string) ([]models.Category, models.ProposalCounts, error) {
	var counts models.ProposalCounts
	err := e.db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END), 0),
			COUNT(*)
		FROM category WHERE is_user_proposed
	`).Scan(&counts.Pending, &counts.Approved, &counts.Rejected, &counts.Total)
	if err != nil {
		return nil, counts, fmt.Errorf("failed to count proposals: %w", err)
	}

	// Pending proposals sort by submission time; reviewed ones by review time.
	order := `ORDER BY updated_at DESC, id`
	if filter == models.StatusPending {
		order = `ORDER BY created_at DESC, id`
	}

	var proposals []models.Category
	if filter == "all" || filter == "" {
		proposals, err = e.listCategories(`SELECT ` + categoryColumns + ` FROM category WHERE is_user_proposed ` + order)
	} else {
		proposals, err = e.listCategories(`SELECT `+categoryColumns+` FROM category WHERE is_user_proposed AND status = $1 `+order, filter)
	}
	if err != nil {
		return nil, counts, err
	}
	return proposals, counts, nil
}

// ListProposalsByUser returns the proposals submitted by one user, newest
// first.
func (e *Engine) ListProposalsByUser(username string) ([]models.Category, error) {
	return e.listCategories(`
		SELECT `+categoryColumns+` FROM category
		WHERE is_user_proposed AND proposed_by = $1
		ORDER BY created_at DESC, id
	`, username)
}

// ListAllCategories returns every category regardless of state, newest first.
// Admin use only.
func (e *Engine) ListAllCategories() ([]models.Category, error) {
	return e.listCategories(`SELECT ` + categoryColumns + ` FROM category ORDER BY created_at DESC, id`)
}
