// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// Domain errors. All are caller-recoverable; handlers map them to HTTP
// statuses. Storage faults are wrapped separately and never collapse into
// these.
var (
	ErrNotFound               = errors.New("category not found")
	ErrVotingClosed           = errors.New("voting period is closed")
	ErrProposalWindowClosed   = errors.New("proposal period is not active")
	ErrCategoryNotVotable     = errors.New("category is not available for voting")
	ErrOptionNotFound         = errors.New("option not found")
	ErrAlreadyVoted           = errors.New("already voted in this category")
	ErrAlreadyVotedThisOption = errors.New("already voted for this option")
	ErrNotAProposal           = errors.New("not a pending user proposal")
)

// ValidationError reports malformed input; the caller should fix and resubmit.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// isUniqueViolation reports whether err is a uniqueness-constraint failure
// from either supported driver. A violation on vote insert is a lost race,
// not a fault.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	// modernc.org/sqlite reports constraint failures by message only
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY constraint failed") ||
		strings.Contains(err.Error(), "constraint failed")
}
