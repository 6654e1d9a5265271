package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.TMDB.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("expected TMDB BaseURL, got %s", cfg.TMDB.BaseURL)
	}

	if cfg.Ranking.Limit != 10 {
		t.Errorf("expected Limit=10, got %d", cfg.Ranking.Limit)
	}

	if cfg.Ranking.Workers != 4 {
		t.Errorf("expected Workers=4, got %d", cfg.Ranking.Workers)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("expected Level=warn, got %s", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid base url",
			modify: func(c *Config) {
				c.TMDB.BaseURL = "api.themoviedb.org"
			},
			wantErr: true,
		},
		{
			name: "invalid max_results",
			modify: func(c *Config) {
				c.TMDB.MaxResults = 0
			},
			wantErr: true,
		},
		{
			name: "invalid workers",
			modify: func(c *Config) {
				c.Ranking.Workers = 0
			},
			wantErr: true,
		},
		{
			name: "unknown mood category",
			modify: func(c *Config) {
				c.Keywords.Moods = map[string][]string{"bored": {"meh"}}
			},
			wantErr: true,
		},
		{
			name: "unknown time category",
			modify: func(c *Config) {
				c.Keywords.Times = map[string][]string{"medium": {"an evening"}}
			},
			wantErr: true,
		},
		{
			name: "new genre category allowed",
			modify: func(c *Config) {
				c.Keywords.Genres = map[string][]string{"western": {"cowboy"}}
				c.Keywords.Moods = map[string][]string{"Happy": {"sunny"}}
			},
			wantErr: false,
		},
		{
			name: "invalid log format",
			modify: func(c *Config) {
				c.Logging.Format = "xml"
			},
			wantErr: true,
		},
		{
			name: "invalid mcp transport",
			modify: func(c *Config) {
				c.MCP.Transport = "http"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Ranking.Limit = 0
	cfg.MCP.Transport = "http"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"ranking.limit", "mcp.transport"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result, err := expandPath(tt.input)
		if err != nil {
			t.Errorf("expandPath(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestLoad(t *testing.T) {
	dir, err := os.MkdirTemp("", "config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	t.Setenv("TMDB_API_KEY", "secret")
	t.Setenv("TMDB_BASE_URL", "")
	t.Setenv("LOG_LEVEL", "")

	path := filepath.Join(dir, "config.toml")
	data := `
[database]
path = "` + filepath.Join(dir, "history.db") + `"

[ranking]
limit = 5

[keywords.genres]
western = ["cowboy", "gunslinger"]
comedy = ["hilarious"]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Ranking.Limit != 5 {
		t.Errorf("Limit = %d, want 5", cfg.Ranking.Limit)
	}
	if cfg.Ranking.Workers != 4 {
		t.Errorf("Workers = %d, want default 4", cfg.Ranking.Workers)
	}
	if cfg.TMDB.APIKey != "secret" {
		t.Errorf("APIKey = %q, want value from TMDB_API_KEY", cfg.TMDB.APIKey)
	}
	if got := cfg.TMDBClientConfig().Timeout; got != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", got)
	}

	tables := cfg.KeywordTables()
	names := tables.GenreNames()
	if names[len(names)-1] != "western" {
		t.Errorf("GenreNames() = %v, want western appended last", names)
	}
	for _, g := range tables.Genres {
		if g.Category == "comedy" && g.Phrases[len(g.Phrases)-1] != "hilarious" {
			t.Errorf("comedy phrases = %v, want hilarious appended", g.Phrases)
		}
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(os.TempDir(), "does-not-exist-moodmatch.toml"))
	if err == nil || !strings.Contains(err.Error(), "config init") {
		t.Errorf("Load() error = %v, want hint to run config init", err)
	}

	cfg, err := LoadOrDefault(filepath.Join(os.TempDir(), "does-not-exist-moodmatch.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}
	if cfg.Ranking.Limit != 10 {
		t.Errorf("LoadOrDefault() Limit = %d, want default", cfg.Ranking.Limit)
	}
}
