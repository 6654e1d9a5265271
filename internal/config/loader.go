package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/vijay-prabhu/moodmatch/internal/catalog"
	"github.com/vijay-prabhu/moodmatch/internal/intent"
)

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	// Expand path
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	// Read file
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'moodmatch config init' to create)", expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Parse TOML
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault loads the config file, falling back to defaults when it does not exist
func LoadOrDefault(path string) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.finish(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return Load(path)
}

// finish applies environment overrides, expands paths and validates
func (c *Config) finish() error {
	c.applyEnv()

	if err := c.expandPaths(); err != nil {
		return fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// applyEnv reads secrets and overrides from the environment
func (c *Config) applyEnv() {
	c.TMDB.APIKey = os.Getenv("TMDB_API_KEY")
	if url := os.Getenv("TMDB_BASE_URL"); url != "" {
		c.TMDB.BaseURL = url
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Database.Path, err = expandPath(c.Database.Path)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// TMDB validation
	if !strings.HasPrefix(c.TMDB.BaseURL, "http://") && !strings.HasPrefix(c.TMDB.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("tmdb.base_url must be an http(s) URL, got '%s'", c.TMDB.BaseURL))
	}
	if c.TMDB.RequestsPerSecond <= 0 {
		errs = append(errs, errors.New("tmdb.requests_per_second must be positive"))
	}
	if c.TMDB.TimeoutSeconds < 1 {
		errs = append(errs, errors.New("tmdb.timeout_seconds must be at least 1"))
	}
	if c.TMDB.MaxResults < 1 || c.TMDB.MaxResults > 500 {
		errs = append(errs, errors.New("tmdb.max_results must be between 1 and 500"))
	}

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	// Ranking validation
	if c.Ranking.Limit < 1 {
		errs = append(errs, errors.New("ranking.limit must be at least 1"))
	}
	if c.Ranking.Workers < 1 || c.Ranking.Workers > 64 {
		errs = append(errs, errors.New("ranking.workers must be between 1 and 64"))
	}

	// Keyword validation: mood and time categories are closed sets
	for name := range c.Keywords.Moods {
		if !validMoods[intent.Mood(strings.ToLower(name))] {
			errs = append(errs, fmt.Errorf("keywords.moods: unknown mood '%s'", name))
		}
	}
	for name := range c.Keywords.Times {
		if !validTimes[intent.TimeCommitment(strings.ToLower(name))] {
			errs = append(errs, fmt.Errorf("keywords.times: unknown time commitment '%s'", name))
		}
	}
	for name := range c.Keywords.Genres {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, errors.New("keywords.genres: genre name must not be empty"))
		}
	}

	// Logging validation
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true, "disabled": true, "off": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("logging.level must be one of trace, debug, info, warn, error, disabled, got '%s'", c.Logging.Level))
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		errs = append(errs, fmt.Errorf("logging.format must be 'console' or 'json', got '%s'", c.Logging.Format))
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

var validMoods = map[intent.Mood]bool{
	intent.MoodStressed: true,
	intent.MoodHappy:    true,
	intent.MoodSad:      true,
	intent.MoodIntense:  true,
}

// Only the extractor's two time categories take phrases
var validTimes = map[intent.TimeCommitment]bool{
	intent.TimeShort: true,
	intent.TimeLong:  true,
}

// KeywordTables returns the built-in keyword tables extended with configured phrases
func (c *Config) KeywordTables() intent.Tables {
	return intent.DefaultTables().WithExtra(c.Keywords.Moods, c.Keywords.Genres, c.Keywords.Times)
}

// TMDBClientConfig returns the catalog client settings
func (c *Config) TMDBClientConfig() catalog.TMDBConfig {
	return catalog.TMDBConfig{
		BaseURL:           c.TMDB.BaseURL,
		APIKey:            c.TMDB.APIKey,
		Language:          c.TMDB.Language,
		Timeout:           c.TMDB.Timeout(),
		RequestsPerSecond: c.TMDB.RequestsPerSecond,
		MaxResults:        c.TMDB.MaxResults,
		FetchRuntime:      c.TMDB.FetchRuntime,
	}
}
