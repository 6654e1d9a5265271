package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/moodmatch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration file for errors",
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".config", "moodmatch")
	dataDir := filepath.Join(home, ".local", "share", "moodmatch")

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	configFile := filepath.Join(configDir, "config.toml")

	// Check if config already exists
	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("Config file already exists at %s\n", configFile)
		fmt.Println("Use 'moodmatch config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Get a TMDB API key at https://www.themoviedb.org/settings/api")
	fmt.Println("  2. export TMDB_API_KEY=<your key>")
	fmt.Println("  3. Run 'moodmatch recommend \"tired, want something funny\"'")
	fmt.Println()
	fmt.Println("Without a key you can still rank a local file:")
	fmt.Println("  moodmatch rank \"something tense\" --candidates movies.json")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found. Run 'moodmatch config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if _, err := config.Load(configPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", configPath)
	return nil
}

const defaultConfig = `# moodmatch configuration

[tmdb]
base_url = "https://api.themoviedb.org/3"
language = "en-US"
requests_per_second = 4
timeout_seconds = 10
max_results = 40       # candidates fetched per run
fetch_runtime = true   # look up runtimes so time preferences can be scored
# API key read from TMDB_API_KEY env var

[database]
path = "~/.local/share/moodmatch/moodmatch.db"

[ranking]
limit = 10    # recommendations shown per run
workers = 4   # parallel scoring goroutines

# Extra trigger phrases, appended after the built-in ones.
# Moods: stressed, happy, sad, intense. Times: short, long.
# Unknown genres become new genre categories.
#
# [keywords.moods]
# stressed = ["burnt out", "fried"]
#
# [keywords.genres]
# western = ["cowboy", "wild west"]
#
# [keywords.times]
# short = ["before bed"]

[logging]
level = "warn"       # debug, info, warn, error
format = "console"   # console, json

[mcp]
enabled = true
transport = "stdio"
`
