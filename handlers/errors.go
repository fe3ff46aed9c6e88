// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/incognitas-app/server/middleware"
	"github.com/incognitas-app/server/vote"
)

// respondVoteError maps engine errors onto HTTP statuses. Anything outside the
// domain taxonomy is a 500 and gets logged; domain errors carry their own
// message to the client.
func respondVoteError(w http.ResponseWriter, err error) {
	var verr vote.ValidationError

	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, vote.ErrVotingClosed), errors.Is(err, vote.ErrProposalWindowClosed):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, vote.ErrNotFound), errors.Is(err, vote.ErrOptionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, vote.ErrAlreadyVoted),
		errors.Is(err, vote.ErrAlreadyVotedThisOption),
		errors.Is(err, vote.ErrCategoryNotVotable),
		errors.Is(err, vote.ErrNotAProposal):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		slog.Error("unexpected engine error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// isDuplicateUser detects a primary-key violation on the users table across
// both supported drivers.
func isDuplicateUser(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed: users.username") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
