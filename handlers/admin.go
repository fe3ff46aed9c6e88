// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/incognitas-app/server/middleware"
	"github.com/incognitas-app/server/models"
	"github.com/incognitas-app/server/vote"
)

type AdminHandler struct {
	db     *sql.DB
	engine *vote.Engine
}

func NewAdminHandler(db *sql.DB, engine *vote.Engine) *AdminHandler {
	return &AdminHandler{db: db, engine: engine}
}

// CreateCategory handles POST /api/admin/categories
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req models.CreateCategoryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Admin categories go live immediately unless explicitly parked.
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	c, err := h.engine.CreateAdminCategory(req.Title, req.Description, req.AllowMultipleVotes, isActive, user.Username, time.Now())
	if err != nil {
		respondVoteError(w, err)
		return
	}

	slog.Info("category created", "category_id", c.ID, "created_by", user.Username)

	middleware.JSONResponse(w, http.StatusCreated, c)
}

// ListCategories handles GET /api/admin/categories
func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.engine.ListAllCategories()
	if err != nil {
		respondVoteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, categories)
}

// GetCategoryDetails handles GET /api/admin/categories/{id}
func (h *AdminHandler) GetCategoryDetails(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category id is required")
		return
	}

	c, err := h.engine.GetCategoryWithVoters(id)
	if err != nil {
		respondVoteError(w, err)
		return
	}

	votes, err := h.engine.VotesByCategory(id)
	if err != nil {
		respondVoteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CategoryDetails{
		Category:   *c,
		Votes:      votes,
		TotalVotes: len(votes),
	})
}

// UpdateCategory handles PUT /api/admin/categories/{id}
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category id is required")
		return
	}

	var req models.UpdateCategoryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	updated, err := h.engine.EditCategory(id, req, time.Now())
	if err != nil {
		respondVoteError(w, err)
		return
	}

	slog.Info("category updated", "category_id", id)

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// DeleteCategory handles DELETE /api/admin/categories/{id}
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category id is required")
		return
	}

	if err := h.engine.DeleteCategory(id); err != nil {
		respondVoteError(w, err)
		return
	}

	slog.Info("category deleted", "category_id", id)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

// GetResults handles GET /api/admin/categories/{id}/results
func (h *AdminHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category id is required")
		return
	}

	results, err := h.engine.GetResults(id)
	if err != nil {
		respondVoteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.engine.Stats()
	if err != nil {
		respondVoteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT username, role, created_at FROM users
		ORDER BY created_at, username
	`)
	if err != nil {
		slog.Error("failed to query users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.Username, &user.Role, &user.CreatedAt); err != nil {
			slog.Error("failed to scan user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for i := range users {
		voted, err := h.engine.VotedCategoryIDs(users[i].Username)
		if err != nil {
			respondVoteError(w, err)
			return
		}
		users[i].VotedCategories = voted
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}

// ChangeUserRole handles PUT /api/admin/users/{username}/role
func (h *AdminHandler) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}

	var req models.ChangeRoleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		middleware.ErrorResponse(w, http.StatusBadRequest, "role must be 'user' or 'admin'")
		return
	}

	res, err := h.db.Exec(`UPDATE users SET role = $1 WHERE username = $2`, req.Role, username)
	if err != nil {
		slog.Error("failed to update role", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	slog.Info("user role changed", "username", username, "role", req.Role)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"username": username,
		"role":     req.Role,
	})
}
