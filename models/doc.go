// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest / LoginRequest: username, password
  - CastVoteRequest: optionText
  - ProposeRequest: title, description
  - CreateCategoryRequest / UpdateCategoryRequest: admin category CRUD
  - RejectProposalRequest: rejectionReason
  - ChangeRoleRequest: role

# Domain Types

Internal data structures:

  - Category: a votable proposition with the four embedded options
  - Option: per-option tally (text, votes, voters)
  - User: account with role and voted-category set
  - Vote: immutable ledger entry (user, category, option, votedAt)
  - Results: option text -> {votes, voters}
  - Stats: admin dashboard aggregates

# Constants

Lifecycle status values:

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

Roles:

	RoleUser  = "user"
	RoleAdmin = "admin"

FixedOptions is the closed option set shared by every category:

	["Gringo", "Marco", "Alex", "Joak"]
*/
package models
