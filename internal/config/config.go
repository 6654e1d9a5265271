package config

import "time"

// Config represents the application configuration
type Config struct {
	TMDB     TMDBConfig     `toml:"tmdb"`
	Database DatabaseConfig `toml:"database"`
	Ranking  RankingConfig  `toml:"ranking"`
	Keywords KeywordsConfig `toml:"keywords"`
	Logging  LoggingConfig  `toml:"logging"`
	MCP      MCPConfig      `toml:"mcp"`
}

// TMDBConfig contains catalog settings
type TMDBConfig struct {
	BaseURL           string  `toml:"base_url"`
	Language          string  `toml:"language"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	MaxResults        int     `toml:"max_results"`
	FetchRuntime      bool    `toml:"fetch_runtime"`
	// API key is read from TMDB_API_KEY environment variable
	APIKey string `toml:"-"`
}

// Timeout returns the request timeout as a duration
func (t TMDBConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// RankingConfig contains ranking settings
type RankingConfig struct {
	Limit   int `toml:"limit"`   // recommendations shown per run
	Workers int `toml:"workers"` // parallel scoring goroutines
}

// KeywordsConfig holds extra trigger phrases keyed by category
type KeywordsConfig struct {
	Moods  map[string][]string `toml:"moods"`
	Genres map[string][]string `toml:"genres"`
	Times  map[string][]string `toml:"times"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			Language:          "en-US",
			RequestsPerSecond: 4,
			TimeoutSeconds:    10,
			MaxResults:        40,
			FetchRuntime:      true,
		},
		Database: DatabaseConfig{
			Path: "~/.local/share/moodmatch/moodmatch.db",
		},
		Ranking: RankingConfig{
			Limit:   10,
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
