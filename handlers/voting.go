// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/incognitas-app/server/middleware"
	"github.com/incognitas-app/server/models"
	"github.com/incognitas-app/server/vote"
)

type VotingHandler struct {
	engine *vote.Engine
}

func NewVotingHandler(engine *vote.Engine) *VotingHandler {
	return &VotingHandler{engine: engine}
}

// ListCategories handles GET /api/votes/categories
func (h *VotingHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	categories, err := h.engine.ListVotableCategories()
	if err != nil {
		respondVoteError(w, err)
		return
	}

	votedIDs, err := h.engine.VotedCategoryIDs(user.Username)
	if err != nil {
		respondVoteError(w, err)
		return
	}
	voted := make(map[string]bool, len(votedIDs))
	for _, id := range votedIDs {
		voted[id] = true
	}

	list := make([]models.CategoryWithVoteState, 0, len(categories))
	for _, c := range categories {
		list = append(list, models.CategoryWithVoteState{Category: c, HasVoted: voted[c.ID]})
	}

	middleware.JSONResponse(w, http.StatusOK, list)
}

// GetCategory handles GET /api/votes/categories/{id}
func (h *VotingHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category id is required")
		return
	}

	c, err := h.engine.GetCategory(id)
	if err != nil {
		respondVoteError(w, err)
		return
	}

	hasVoted, err := h.engine.HasVoted(user.Username, id)
	if err != nil {
		respondVoteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CategoryWithVoteState{Category: *c, HasVoted: hasVoted})
}

// CastVote handles POST /api/votes/categories/{id}/vote
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category id is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.OptionText == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "optionText is required")
		return
	}

	updated, err := h.engine.CastVote(user.Username, id, req.OptionText, time.Now())
	if err != nil {
		respondVoteError(w, err)
		return
	}

	slog.Info("vote cast", "username", user.Username, "category_id", id, "option", req.OptionText)

	middleware.JSONResponse(w, http.StatusOK, models.CategoryWithVoteState{Category: *updated, HasVoted: true})
}

// NextCategory handles GET /api/votes/next
// Responds 204 when the user has voted in every votable category.
func (h *VotingHandler) NextCategory(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	next, err := h.engine.NextUnvotedCategory(user.Username)
	if err != nil {
		respondVoteError(w, err)
		return
	}
	if next == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CategoryWithVoteState{Category: *next, HasVoted: false})
}

// MyVotes handles GET /api/votes/my-votes
func (h *VotingHandler) MyVotes(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	votes, err := h.engine.VotesByUser(user.Username)
	if err != nil {
		respondVoteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, votes)
}
