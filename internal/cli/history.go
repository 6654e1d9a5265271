package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/moodmatch/internal/database"
	"github.com/vijay-prabhu/moodmatch/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past recommendation runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past runs",
	Long: `List past recommendation runs, newest first.

Examples:
  moodmatch history list                 # Last 20 runs
  moodmatch history list --since=7d      # Runs from the last week
  moodmatch history list --mood=stressed # Only runs where stress was detected
  moodmatch history list -o json         # Output as JSON`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run with its recommendations",
	Long: `Show a past run with the parsed intent and the explanation for each pick.
The run ID may be shortened to its first 8 characters.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryShow,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history statistics",
	Args:  cobra.NoArgs,
	RunE:  runHistoryStats,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run from history",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var (
	historySince string
	historyMood  string
	historyLimit int
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	historyListCmd.Flags().StringVar(&historySince, "since", "", "Filter by time (e.g., 7d, 2w, 1m)")
	historyListCmd.Flags().StringVar(&historyMood, "mood", "", "Filter by mood (stressed, happy, sad, intense)")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of results")
	historyStatsCmd.Flags().StringVar(&historySince, "since", "", "Time period (e.g., 7d, 2w, 1m)")
}

func openHistory() (*database.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	// Build query options
	opts := database.ListOptions{
		Limit: historyLimit,
	}

	if historyMood != "" {
		mood := strings.ToLower(historyMood)
		opts.Mood = &mood
	}

	since, err := parseSince(historySince)
	if err != nil {
		return err
	}
	opts.Since = since

	runs, err := db.ListRuns(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, runs)
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	detail, err := db.GetRunDetail(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}
	if detail == nil {
		return fmt.Errorf("run not found: %s", args[0])
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, detail)
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	since, err := parseSince(historySince)
	if err != nil {
		return err
	}

	stats, err := db.GetStats(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, stats)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := db.GetRun(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("run not found: %s", args[0])
	}

	if err := db.DeleteRun(ctx, run.ID); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", run.ID)
	return nil
}

// parseSince converts a --since flag into a cutoff time; empty means no cutoff
func parseSince(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	d, err := parseDuration(s)
	if err != nil {
		return nil, fmt.Errorf("invalid duration: %w", err)
	}
	since := time.Now().Add(-d)
	return &since, nil
}

// parseDuration parses a human-readable duration like "7d", "2w", "1m"
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format")
	}

	unit := s[len(s)-1]
	valueStr := s[:len(s)-1]

	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return 0, fmt.Errorf("invalid duration value")
	}

	switch unit {
	case 'h':
		return time.Duration(value) * time.Hour, nil
	case 'd':
		return time.Duration(value) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %c (use h, d, w, or m)", unit)
	}
}
