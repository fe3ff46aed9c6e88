// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/incognitas-app/server/middleware"
	"github.com/incognitas-app/server/models"
	"github.com/incognitas-app/server/vote"
	"github.com/incognitas-app/server/window"
)

type ProposalHandler struct {
	engine *vote.Engine
}

func NewProposalHandler(engine *vote.Engine) *ProposalHandler {
	return &ProposalHandler{engine: engine}
}

type periodResponse struct {
	Proposal window.Info `json:"proposal"`
	Voting   window.Info `json:"voting"`
}

// Period handles GET /api/proposals/period
func (h *ProposalHandler) Period(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	middleware.JSONResponse(w, http.StatusOK, periodResponse{
		Proposal: h.engine.ProposalPeriod(now),
		Voting:   h.engine.VotingPeriod(now),
	})
}

// Create handles POST /api/proposals
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req models.ProposeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	proposal, err := h.engine.ProposeCategory(user.Username, req.Title, req.Description, time.Now())
	if err != nil {
		respondVoteError(w, err)
		return
	}

	slog.Info("proposal submitted", "username", user.Username, "category_id", proposal.ID)

	middleware.JSONResponse(w, http.StatusCreated, proposal)
}

// Mine handles GET /api/proposals/mine
func (h *ProposalHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	proposals, err := h.engine.ListProposalsByUser(user.Username)
	if err != nil {
		respondVoteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, proposals)
}

// List handles GET /api/admin/proposals?status=
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("status")
	switch filter {
	case "", "all", models.StatusPending, models.StatusApproved, models.StatusRejected:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid status filter")
		return
	}

	proposals, counts, err := h.engine.ListProposals(filter)
	if err != nil {
		respondVoteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProposalListResponse{
		Proposals: proposals,
		Counts:    counts,
	})
}

// Approve handles POST /api/admin/proposals/{id}/approve
func (h *ProposalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal id is required")
		return
	}

	approved, err := h.engine.ApproveProposal(id, time.Now())
	if err != nil {
		respondVoteError(w, err)
		return
	}

	slog.Info("proposal approved", "category_id", id)

	middleware.JSONResponse(w, http.StatusOK, approved)
}

// Reject handles POST /api/admin/proposals/{id}/reject
// The rejection reason is optional; an empty body is accepted.
func (h *ProposalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal id is required")
		return
	}

	var req models.RejectProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	rejected, err := h.engine.RejectProposal(id, req.RejectionReason, time.Now())
	if err != nil {
		respondVoteError(w, err)
		return
	}

	slog.Info("proposal rejected", "category_id", id)

	middleware.JSONResponse(w, http.StatusOK, rejected)
}
