package cliparse

import (
	"strings"
	"testing"
	"time"
)

func validArgs() []string {
	return []string{
		"-d", "file:incognitas.db",
		"-jwt-secret", "test-secret",
		"-proposal-start", "2026-01-19T00:00:00Z",
		"-proposal-end", "2026-01-25T23:59:59Z",
		"-voting-start", "2026-01-26T00:00:00Z",
		"-voting-end", "2026-02-01T23:59:59Z",
	}
}

func TestParseFlagsValid(t *testing.T) {
	cfg, err := ParseFlags(validArgs())
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 4000 {
		t.Errorf("Port = %d, want default 4000", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want default sqlite", cfg.DatabaseType)
	}
	if cfg.TokenTTL != 72*time.Hour {
		t.Errorf("TokenTTL = %v, want default 72h", cfg.TokenTTL)
	}

	want := time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC)
	if !cfg.ProposalWindow().Start.Equal(want) {
		t.Errorf("ProposalWindow start = %v, want %v", cfg.ProposalWindow().Start, want)
	}
	if !cfg.VotingWindow().End.After(cfg.VotingWindow().Start) {
		t.Error("voting window end should follow its start")
	}
}

func TestParseFlagsRejections(t *testing.T) {
	replace := func(args []string, flagName, value string) []string {
		out := append([]string(nil), args...)
		for i := range out {
			if out[i] == flagName {
				out[i+1] = value
			}
		}
		return out
	}

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{
			name:    "missing database URL",
			args:    replace(validArgs(), "-d", ""),
			wantMsg: "database URL",
		},
		{
			name:    "missing JWT secret",
			args:    replace(validArgs(), "-jwt-secret", ""),
			wantMsg: "JWT_SECRET",
		},
		{
			name:    "malformed window instant",
			args:    replace(validArgs(), "-voting-start", "next tuesday"),
			wantMsg: "VOTING_START",
		},
		{
			name:    "inverted proposal window",
			args:    replace(validArgs(), "-proposal-end", "2026-01-01T00:00:00Z"),
			wantMsg: "proposal window",
		},
		{
			name:    "unknown database type",
			args:    append(validArgs(), "-t", "oracle"),
			wantMsg: "database type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseFlagsExplicitValues(t *testing.T) {
	args := append(validArgs(), "-p", "8080", "-t", "postgres", "-token-ttl", "24h")
	cfg, err := ParseFlags(args)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("DatabaseType = %q, want postgres", cfg.DatabaseType)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
}
