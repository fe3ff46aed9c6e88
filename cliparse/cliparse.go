package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/incognitas-app/server/window"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	JWTSecret     string
	TokenTTL      time.Duration
	ProposalStart time.Time
	ProposalEnd   time.Time
	VotingStart   time.Time
	VotingEnd     time.Time
}

// ProposalWindow returns the configured proposal period gate.
func (c Config) ProposalWindow() window.Window {
	return window.Window{Start: c.ProposalStart, End: c.ProposalEnd}
}

// VotingWindow returns the configured voting period gate.
func (c Config) VotingWindow() window.Window {
	return window.Window{Start: c.VotingStart, End: c.VotingEnd}
}

// ParseFlags validates flags, falling back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var proposalStart, proposalEnd, votingStart, votingEnd, tokenTTL string

	fs := flag.NewFlagSet("incognitas", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")
	fs.StringVar(&tokenTTL, "token-ttl", "", "Session token lifetime (e.g. 72h)")

	// Time windows, RFC 3339
	fs.StringVar(&proposalStart, "proposal-start", "", "Proposal window start (RFC 3339)")
	fs.StringVar(&proposalEnd, "proposal-end", "", "Proposal window end (RFC 3339)")
	fs.StringVar(&votingStart, "voting-start", "", "Voting window start (RFC 3339)")
	fs.StringVar(&votingEnd, "voting-end", "", "Voting window end (RFC 3339)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4000 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if tokenTTL == "" {
		tokenTTL = os.Getenv("TOKEN_TTL")
	}
	if tokenTTL == "" {
		cfg.TokenTTL = 72 * time.Hour
	} else {
		ttl, err := time.ParseDuration(tokenTTL)
		if err != nil || ttl <= 0 {
			return Config{}, errors.New("invalid TOKEN_TTL, expected a positive duration like 72h")
		}
		cfg.TokenTTL = ttl
	}

	var err error
	if cfg.ProposalStart, err = parseInstant(proposalStart, "PROPOSAL_START"); err != nil {
		return Config{}, err
	}
	if cfg.ProposalEnd, err = parseInstant(proposalEnd, "PROPOSAL_END"); err != nil {
		return Config{}, err
	}
	if cfg.VotingStart, err = parseInstant(votingStart, "VOTING_START"); err != nil {
		return Config{}, err
	}
	if cfg.VotingEnd, err = parseInstant(votingEnd, "VOTING_END"); err != nil {
		return Config{}, err
	}

	if cfg.ProposalEnd.Before(cfg.ProposalStart) {
		return Config{}, errors.New("proposal window end precedes its start")
	}
	if cfg.VotingEnd.Before(cfg.VotingStart) {
		return Config{}, errors.New("voting window end precedes its start")
	}

	return cfg, nil
}

// parseInstant resolves a flag value with env fallback and parses it as RFC 3339.
func parseInstant(flagValue, envName string) (time.Time, error) {
	value := flagValue
	if value == "" {
		value = os.Getenv(envName)
	}
	if value == "" {
		return time.Time{}, fmt.Errorf("%s required (RFC 3339)", envName)
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", envName, err)
	}
	return t, nil
}
