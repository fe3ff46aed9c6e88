// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and session token handling.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(password, hash)

CheckPassword returns ErrInvalidCredentials on mismatch so handlers never need
to inspect bcrypt errors directly.

# Session Tokens

Sessions are stateless HS256 JWTs carrying the username and role:

	token, err := auth.GenerateToken("alice", models.RoleUser, secret, 72*time.Hour)
	claims, err := auth.ParseToken(token, secret)

Tokens travel in an httpOnly cookie or an Authorization: Bearer header; the
middleware package resolves them to a user row on each request.

# Input Validation

ValidateUsername and ValidatePassword enforce the registration limits
(username >= 3 chars, it becomes the primary key; password >= 6 chars).
*/
package auth
