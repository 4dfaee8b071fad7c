package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
board:
  token: tok
  board_id: "123456"
http:
  timeout_seconds: 45
  user_agent: test-agent
headless:
  enabled: true
  max_parallel: 2
  nav_timeout_seconds: 30
run:
  tasks: ["service-guarantees", "target-verticals"]
  record_scope: "987"
  record_delay_ms: 250
  location: "Chicago, IL"
columns:
  website: Company Website
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Board.Token != "tok" || cfg.Board.BoardID != "123456" {
		t.Fatalf("expected board credentials to load: %+v", cfg.Board)
	}
	if len(cfg.Run.Tasks) != 2 || cfg.Run.Tasks[0] != "service-guarantees" {
		t.Fatalf("expected task list to load: %+v", cfg.Run.Tasks)
	}
	if cfg.Run.RecordScope != "987" {
		t.Fatalf("expected record scope 987, got %q", cfg.Run.RecordScope)
	}
	if cfg.Columns.Website != "Company Website" {
		t.Fatalf("expected website column override, got %q", cfg.Columns.Website)
	}
	// Unset titles keep their defaults.
	if cfg.Columns.TargetVerticals != "Target Verticals" {
		t.Fatalf("expected default verticals title, got %q", cfg.Columns.TargetVerticals)
	}
	if got := cfg.FetchTimeout(); got != 45*time.Second {
		t.Fatalf("expected fetch timeout 45s, got %v", got)
	}
	if got := cfg.RecordDelay(); got != 250*time.Millisecond {
		t.Fatalf("expected record delay 250ms, got %v", got)
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		Server: ServerConfig{Port: 8080},
		Board:  BoardConfig{Token: "tok", BoardID: "1"},
		HTTP:   HTTPConfig{TimeoutSeconds: 10},
	}

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "invalid port",
			cfg: func() Config {
				c := base
				c.Server.Port = 0
				return c
			}(),
			want: "server.port",
		},
		{
			name: "missing token",
			cfg: func() Config {
				c := base
				c.Board.Token = ""
				return c
			}(),
			want: "board.token",
		},
		{
			name: "missing board id",
			cfg: func() Config {
				c := base
				c.Board.BoardID = ""
				return c
			}(),
			want: "board.board_id",
		},
		{
			name: "invalid timeout",
			cfg: func() Config {
				c := base
				c.HTTP.TimeoutSeconds = 0
				return c
			}(),
			want: "http.timeout_seconds",
		},
		{
			name: "headless missing max parallel",
			cfg: func() Config {
				c := base
				c.Headless.Enabled = true
				c.Headless.MaxParallel = 0
				return c
			}(),
			want: "headless.max_parallel",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
