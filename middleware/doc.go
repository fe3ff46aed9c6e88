// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Authentication

An Authenticator guards routes with session tokens:

	authn := middleware.NewAuthenticator(db, cfg.JWTSecret)
	mux.HandleFunc("GET /api/votes/next", authn.RequireAuth(handler))
	mux.HandleFunc("GET /api/admin/stats", authn.RequireAdmin(handler))

Tokens are read from the session cookie or a Bearer Authorization header and
resolved against the users table, so role changes take effect immediately.
Handlers retrieve the caller with middleware.UserFromContext(r.Context()).

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Reflects the request origin and allows credentials so the session cookie
travels with cross-origin requests.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
