package models

import "time"

// Category lifecycle status constants
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// User role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Input length limits
const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 300
	MinUsernameLen    = 3
	MinPasswordLen    = 6
)

// FixedOptions is the closed, system-wide option set. Every category is a vote
// between these four, in this display order. Not user-configurable.
var FixedOptions = []string{"Gringo", "Marco", "Alex", "Joak"}

// IsFixedOption reports whether text is one of the four fixed option labels.
func IsFixedOption(text string) bool {
	for _, opt := range FixedOptions {
		if opt == text {
			return true
		}
	}
	return false
}

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CastVoteRequest struct {
	OptionText string `json:"optionText"`
}

type ProposeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type RejectProposalRequest struct {
	RejectionReason string `json:"rejectionReason"`
}

type CreateCategoryRequest struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	AllowMultipleVotes bool   `json:"allowMultipleVotes"`
	IsActive           *bool  `json:"isActive,omitempty"`
}

// UpdateCategoryRequest carries partial updates; nil fields are left unchanged.
// The four options and their tallies are never touched by an update.
type UpdateCategoryRequest struct {
	Title              *string `json:"title,omitempty"`
	Description        *string `json:"description,omitempty"`
	IsActive           *bool   `json:"isActive,omitempty"`
	AllowMultipleVotes *bool   `json:"allowMultipleVotes,omitempty"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// Response types

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CategoryWithVoteState struct {
	Category Category `json:"category"`
	HasVoted bool     `json:"hasVoted"`
}

type CategoryDetails struct {
	Category   Category `json:"category"`
	Votes      []Vote   `json:"votes"`
	TotalVotes int      `json:"totalVotes"`
}

type ProposalListResponse struct {
	Proposals []Category     `json:"proposals"`
	Counts    ProposalCounts `json:"counts"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Option struct {
	Text   string   `json:"text"`
	Votes  int      `json:"votes"`
	Voters []string `json:"voters,omitempty"`
}

type Category struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Options            []Option  `json:"options"`
	IsActive           bool      `json:"isActive"`
	AllowMultipleVotes bool      `json:"allowMultipleVotes"`
	CreatedBy          string    `json:"createdBy"`
	ProposedBy         *string   `json:"proposedBy,omitempty"`
	IsUserProposed     bool      `json:"isUserProposed"`
	Status             string    `json:"status"`
	RejectionReason    *string   `json:"rejectionReason,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type User struct {
	Username        string    `json:"username"`
	PasswordHash    string    `json:"-"` // Never expose in JSON
	Role            string    `json:"role"`
	VotedCategories []string  `json:"votedCategories"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Vote struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	CategoryID string    `json:"categoryId"`
	Option     string    `json:"option"`
	VotedAt    time.Time `json:"votedAt"`
}

// VoteWithCategory is a ledger entry joined with its category's title,
// for vote-history listings.
type VoteWithCategory struct {
	Vote
	CategoryTitle string `json:"categoryTitle"`
}

// Results types

type OptionResult struct {
	Votes  int      `json:"votes"`
	Voters []string `json:"voters"`
}

// Results maps option text to its tally.
type Results map[string]OptionResult

type ProposalCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

type CategoryVoteCount struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	TotalVotes int    `json:"totalVotes"`
}

type Stats struct {
	TotalCategories  int                 `json:"totalCategories"`
	ActiveCategories int                 `json:"activeCategories"`
	TotalUsers       int                 `json:"totalUsers"`
	TotalVotes       int                 `json:"totalVotes"`
	TopCategories    []CategoryVoteCount `json:"topCategories"`
	RecentVotes      []VoteWithCategory  `json:"recentVotes"`
}
