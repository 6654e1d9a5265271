// Package cli implements the moodmatch command line.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/moodmatch/internal/config"
	"github.com/vijay-prabhu/moodmatch/internal/logging"
	"github.com/vijay-prabhu/moodmatch/internal/mcp"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	configPath string
	outputFmt  string
	logLevel   string
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
	mcp.SetVersion(v)
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "moodmatch",
	Short: "Mood-based movie and series recommendations",
	Long: `moodmatch turns how you feel into something to watch.

Describe your mood in plain words and it will:
  - Detect mood, energy, wanted and avoided genres, and time available
  - Discover candidates from TMDB (or rank your own candidate file)
  - Score every title and explain why it was picked
  - Keep a history of past runs
  - Serve all of this over MCP for AI assistants`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: ~/.config/moodmatch/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table",
		"output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error); overrides config")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}
		configPath = filepath.Join(home, ".config", "moodmatch", "config.toml")
	}
}

// loadConfig loads the config file (or defaults) and sets up logging
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	logging.Init(logging.Config{
		Level:  level,
		Format: cfg.Logging.Format,
	})
	logging.Debug().Str("config", configPath).Msg("configuration loaded")

	return cfg, nil
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("moodmatch %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", buildTime)
	},
}
