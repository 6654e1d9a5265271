package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/moodmatch/internal/catalog"
	"github.com/vijay-prabhu/moodmatch/internal/config"
	"github.com/vijay-prabhu/moodmatch/internal/database"
	"github.com/vijay-prabhu/moodmatch/internal/intent"
	"github.com/vijay-prabhu/moodmatch/internal/output"
	"github.com/vijay-prabhu/moodmatch/internal/recommender"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <text...>",
	Short: "Recommend movies or series for a mood",
	Long: `Parse the mood, discover candidates from TMDB, rank them and save the run.

Requires TMDB_API_KEY in the environment unless --candidates is given.

Examples:
  moodmatch recommend "exhausted, want something funny and short"
  moodmatch recommend "binge a dark sci-fi series, nothing scary" --limit 5
  moodmatch recommend "sad, need a laugh" --candidates movies.json --no-save`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecommend,
}

var (
	recommendLimit      int
	recommendNoSave     bool
	recommendCandidates string
)

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().IntVar(&recommendLimit, "limit", 0, "Number of recommendations (default from config)")
	recommendCmd.Flags().BoolVar(&recommendNoSave, "no-save", false, "Do not record this run in history")
	recommendCmd.Flags().StringVar(&recommendCandidates, "candidates", "", "Use a local JSON candidate file instead of TMDB")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	provider, err := newProvider(cfg, recommendCandidates)
	if err != nil {
		return err
	}

	var store recommender.Store
	if !recommendNoSave {
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		store = db
	}

	rec := recommender.New(intent.NewExtractor(cfg.KeywordTables()), provider, store, cfg.Ranking.Workers, cfg.Ranking.Limit)

	terminal := NewTerminal()
	result, err := rec.Recommend(ctx, strings.Join(args, " "), recommender.Options{
		Limit:    recommendLimit,
		NoSave:   recommendNoSave,
		Progress: terminal.Progress(),
	})
	terminal.ClearLine()
	if err != nil {
		if errors.Is(err, catalog.ErrMissingAPIKey) {
			return fmt.Errorf("%w (export it, or use --candidates with a local file)", err)
		}
		return err
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, result)
}

// newProvider returns a file provider when a path is given, otherwise the TMDB client
func newProvider(cfg *config.Config, candidatesPath string) (catalog.Provider, error) {
	if candidatesPath != "" {
		return catalog.LoadFile(candidatesPath)
	}
	return catalog.NewTMDB(cfg.TMDBClientConfig()), nil
}
