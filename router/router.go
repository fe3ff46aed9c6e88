// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/incognitas-app/server/cliparse"
	"github.com/incognitas-app/server/handlers"
	"github.com/incognitas-app/server/middleware"
	"github.com/incognitas-app/server/vote"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	engine := vote.New(db, cfg.ProposalWindow(), cfg.VotingWindow())
	authn := middleware.NewAuthenticator(db, cfg.JWTSecret)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(engine)
	proposalHandler := handlers.NewProposalHandler(engine)
	adminHandler := handlers.NewAdminHandler(db, engine)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication (public)
	mux.HandleFunc("POST /api/auth/register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /api/auth/me", middleware.WithLogging(authn.RequireAuth(authHandler.Me)))

	// Voting (authenticated users)
	mux.HandleFunc("GET /api/votes/categories", middleware.WithLogging(authn.RequireAuth(votingHandler.ListCategories)))
	mux.HandleFunc("GET /api/votes/categories/{id}", middleware.WithLogging(authn.RequireAuth(votingHandler.GetCategory)))
	mux.HandleFunc("POST /api/votes/categories/{id}/vote", middleware.WithLogging(authn.RequireAuth(votingHandler.CastVote)))
	mux.HandleFunc("GET /api/votes/next", middleware.WithLogging(authn.RequireAuth(votingHandler.NextCategory)))
	mux.HandleFunc("GET /api/votes/my-votes", middleware.WithLogging(authn.RequireAuth(votingHandler.MyVotes)))

	// Proposals (authenticated users)
	mux.HandleFunc("GET /api/proposals/period", middleware.WithLogging(authn.RequireAuth(proposalHandler.Period)))
	mux.HandleFunc("POST /api/proposals", middleware.WithLogging(authn.RequireAuth(proposalHandler.Create)))
	mux.HandleFunc("GET /api/proposals/mine", middleware.WithLogging(authn.RequireAuth(proposalHandler.Mine)))

	// Proposal review (admin)
	mux.HandleFunc("GET /api/admin/proposals", middleware.WithLogging(authn.RequireAdmin(proposalHandler.List)))
	mux.HandleFunc("POST /api/admin/proposals/{id}/approve", middleware.WithLogging(authn.RequireAdmin(proposalHandler.Approve)))
	mux.HandleFunc("POST /api/admin/proposals/{id}/reject", middleware.WithLogging(authn.RequireAdmin(proposalHandler.Reject)))

	// Category management (admin)
	mux.HandleFunc("POST /api/admin/categories", middleware.WithLogging(authn.RequireAdmin(adminHandler.CreateCategory)))
	mux.HandleFunc("GET /api/admin/categories", middleware.WithLogging(authn.RequireAdmin(adminHandler.ListCategories)))
	mux.HandleFunc("GET /api/admin/categories/{id}", middleware.WithLogging(authn.RequireAdmin(adminHandler.GetCategoryDetails)))
	mux.HandleFunc("PUT /api/admin/categories/{id}", middleware.WithLogging(authn.RequireAdmin(adminHandler.UpdateCategory)))
	mux.HandleFunc("DELETE /api/admin/categories/{id}", middleware.WithLogging(authn.RequireAdmin(adminHandler.DeleteCategory)))
	mux.HandleFunc("GET /api/admin/categories/{id}/results", middleware.WithLogging(authn.RequireAdmin(adminHandler.GetResults)))

	// Dashboard and user management (admin)
	mux.HandleFunc("GET /api/admin/stats", middleware.WithLogging(authn.RequireAdmin(adminHandler.Stats)))
	mux.HandleFunc("GET /api/admin/users", middleware.WithLogging(authn.RequireAdmin(adminHandler.ListUsers)))
	mux.HandleFunc("PUT /api/admin/users/{username}/role", middleware.WithLogging(authn.RequireAdmin(adminHandler.ChangeUserRole)))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("incognitas API v1"))
	})

	return mux
}
