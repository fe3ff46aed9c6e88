// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/incognitas-app/server/models"
	"github.com/incognitas-app/server/testutil"
)

func TestPeriodHandler(t *testing.T) {
	env := newTestEnv(t)
	h := NewProposalHandler(env.engine)
	user := env.createUser(t, "asker")

	handler := env.authn.RequireAuth(h.Period)
	req := asUser(t, testutil.MakeRequest("GET", "/api/proposals/period", nil, nil), user, models.RoleUser)
	w := httptest.NewRecorder()

	handler(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp periodResponse
	testutil.AssertJSON(t, w, &resp)

	// The test config opens both windows around the present.
	if !resp.Proposal.IsActive || !resp.Voting.IsActive {
		t.Errorf("Expected both windows active, got proposal=%v voting=%v",
			resp.Proposal.IsActive, resp.Voting.IsActive)
	}
	if resp.Proposal.DaysRemaining < 1 {
		t.Errorf("Expected at least 1 day remaining, got %d", resp.Proposal.DaysRemaining)
	}
}

func TestCreateProposalHandler(t *testing.T) {
	env := newTestEnv(t)
	h := NewProposalHandler(env.engine)
	user := env.createUser(t, "proposer")

	handler := env.authn.RequireAuth(h.Create)

	t.Run("success", func(t *testing.T) {
		req := asUser(t, testutil.MakeRequest("POST", "/api/proposals",
			models.ProposeRequest{Title: "Team outing", Description: "where to go"}, nil), user, models.RoleUser)
		w := httptest.NewRecorder()

		handler(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.Category
		testutil.AssertJSON(t, w, &resp)
		if resp.Status != models.StatusPending || resp.IsActive {
			t.Errorf("Expected pending inactive proposal, got status=%s isActive=%v", resp.Status, resp.IsActive)
		}
		if resp.ProposedBy == nil || *resp.ProposedBy != user {
			t.Errorf("Expected proposedBy %q, got %v", user, resp.ProposedBy)
		}
	})

	t.Run("title too long", func(t *testing.T) {
		req := asUser(t, testutil.MakeRequest("POST", "/api/proposals",
			models.ProposeRequest{Title: strings.Repeat("x", models.MaxTitleLen+1)}, nil), user, models.RoleUser)
		w := httptest.NewRecorder()

		handler(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("empty title", func(t *testing.T) {
		req := asUser(t, testutil.MakeRequest("POST", "/api/proposals",
			models.ProposeRequest{Title: "   "}, nil), user, models.RoleUser)
		w := httptest.NewRecorder()

		handler(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestMineHandler(t *testing.T) {
	env := newTestEnv(t)
	h := NewProposalHandler(env.engine)
	user := env.createUser(t, "mine-owner")
	other := env.createUser(t, "other")

	if _, err := env.engine.ProposeCategory(user, "Mine", "", time.Now()); err != nil {
		t.Fatalf("ProposeCategory failed: %v", err)
	}
	if _, err := env.engine.ProposeCategory(other, "Not mine", "", time.Now()); err != nil {
		t.Fatalf("ProposeCategory failed: %v", err)
	}

	handler := env.authn.RequireAuth(h.Mine)
	req := asUser(t, testutil.MakeRequest("GET", "/api/proposals/mine", nil, nil), user, models.RoleUser)
	w := httptest.NewRecorder()

	handler(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var mine []models.Category
	testutil.AssertJSON(t, w, &mine)
	if len(mine) != 1 || mine[0].Title != "Mine" {
		t.Errorf("Expected only own proposals, got %+v", mine)
	}
}

func TestListProposalsHandler(t *testing.T) {
	env := newTestEnv(t)
	h := NewProposalHandler(env.engine)
	admin := env.createAdmin(t, "admin")
	user := env.createUser(t, "submitter")

	p1, err := env.engine.ProposeCategory(user, "Keep pending", "", time.Now())
	if err != nil {
		t.Fatalf("ProposeCategory failed: %v", err)
	}
	p2, err := env.engine.ProposeCategory(user, "Approve me", "", time.Now())
	if err != nil {
		t.Fatalf("ProposeCategory failed: %v", err)
	}
	if _, err := env.engine.ApproveProposal(p2.ID, time.Now()); err != nil {
		t.Fatalf("ApproveProposal failed: %v", err)
	}

	handler := env.authn.RequireAdmin(h.List)

	t.Run("all with counts", func(t *testing.T) {
		req := asUser(t, testutil.MakeRequest("GET", "/api/admin/proposals", nil, nil), admin, models.RoleAdmin)
		w := httptest.NewRecorder()

		handler(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ProposalListResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Proposals) != 2 {
			t.Errorf("Expected 2 proposals, got %d", len(resp.Proposals))
		}
		if resp.Counts.Pending != 1 || resp.Counts.Approved != 1 || resp.Counts.Total != 2 {
			t.Errorf("Unexpected counts: %+v", resp.Counts)
		}
	})

	t.Run("pending filter", func(t *testing.T) {
		req := asUser(t, testutil.MakeRequest("GET", "/api/admin/proposals?status=pending", nil, nil), admin, models.RoleAdmin)
		w := httptest.NewRecorder()

		handler(w, req)

		var resp models.ProposalListResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Proposals) != 1 || resp.Proposals[0].ID != p1.ID {
			t.Errorf("Expected only the pending proposal, got %+v", resp.Proposals)
		}
	})

	t.Run("invalid filter", func(t *testing.T) {
		req := asUser(t, testutil.MakeRequest("GET", "/api/admin/proposals?status=bogus", nil, nil), admin, models.RoleAdmin)
		w := httptest.NewRecorder()

		handler(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestApproveProposalHandler(t *testing.T) {
	env := newTestEnv(t)
	h := NewProposalHandler(env.engine)
	admin := env.createAdmin(t, "admin")
	user := env.createUser(t, "submitter")

	p, err := env.engine.ProposeCategory(user, "Review me", "", time.Now())
	if err != nil {
		t.Fatalf("ProposeCategory failed: %v", err)
	}

	handler := env.authn.RequireAdmin(h.Approve)

	approve := func(id string) *httptest.ResponseRecorder {
		req := asUser(t, testutil.MakeRequest("POST", "/api/admin/proposals/"+id+"/approve", nil, nil), admin, models.RoleAdmin)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler(w, req)
		return w
	}

	w := approve(p.ID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.Category
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != models.StatusApproved || !resp.IsActive {
		t.Errorf("Expected approved active category, got %+v", resp)
	}

	// Transitions are one-directional: re-reviewing is a conflict.
	testutil.AssertStatus(t, approve(p.ID), http.StatusConflict)
	testutil.AssertStatus(t, approve("missing-id"), http.StatusNotFound)
}

func TestRejectProposalHandler(t *testing.T) {
	env := newTestEnv(t)
	h := NewProposalHandler(env.engine)
	admin := env.createAdmin(t, "admin")
	user := env.createUser(t, "submitter")

	p, err := env.engine.ProposeCategory(user, "Reject me", "", time.Now())
	if err != nil {
		t.Fatalf("ProposeCategory failed: %v", err)
	}

	handler := env.authn.RequireAdmin(h.Reject)

	req := asUser(t, testutil.MakeRequest("POST", "/api/admin/proposals/"+p.ID+"/reject",
		models.RejectProposalRequest{RejectionReason: "off topic"}, nil), admin, models.RoleAdmin)
	req.SetPathValue("id", p.ID)
	w := httptest.NewRecorder()

	handler(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.Category
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != models.StatusRejected || resp.IsActive {
		t.Errorf("Expected rejected inactive category, got %+v", resp)
	}
	if resp.RejectionReason == nil || *resp.RejectionReason != "off topic" {
		t.Errorf("Expected rejection reason to be recorded, got %v", resp.RejectionReason)
	}

	t.Run("empty body is accepted", func(t *testing.T) {
		p2, err := env.engine.ProposeCategory(user, "Reject silently", "", time.Now())
		if err != nil {
			t.Fatalf("ProposeCategory failed: %v", err)
		}

		req := asUser(t, testutil.MakeRequest("POST", "/api/admin/proposals/"+p2.ID+"/reject", nil, nil), admin, models.RoleAdmin)
		req.SetPathValue("id", p2.ID)
		w := httptest.NewRecorder()

		handler(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.Category
		testutil.AssertJSON(t, w, &resp)
		if resp.RejectionReason != nil {
			t.Errorf("Expected no rejection reason, got %v", *resp.RejectionReason)
		}
	})
}
