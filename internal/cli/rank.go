package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/moodmatch/internal/catalog"
	"github.com/vijay-prabhu/moodmatch/internal/intent"
	"github.com/vijay-prabhu/moodmatch/internal/output"
	"github.com/vijay-prabhu/moodmatch/internal/ranker"
)

var rankCmd = &cobra.Command{
	Use:   "rank <text...> --candidates <file>",
	Short: "Rank a local candidate file against a mood",
	Long: `Rank movies from a JSON file without calling TMDB.

The file holds an array of candidates:
  [{"id": 1, "title": "Heat", "rating": 8.3, "popularity": 40,
    "genres": ["thriller", "crime"], "runtime": 170, "overview": "..."}]

Examples:
  moodmatch rank "tired, something funny" --candidates movies.json
  moodmatch rank "dark sci-fi, no romance" --candidates movies.json --limit 3 -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRank,
}

var (
	rankCandidates string
	rankLimit      int
)

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVar(&rankCandidates, "candidates", "", "JSON file of candidate movies (required)")
	rankCmd.Flags().IntVar(&rankLimit, "limit", 0, "Maximum number of results (0 = all)")
}

func runRank(cmd *cobra.Command, args []string) error {
	if rankCandidates == "" {
		return errors.New("--candidates is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	extractor := intent.NewExtractor(cfg.KeywordTables())
	in, err := extractor.Extract(strings.Join(args, " "))
	if err != nil {
		return err
	}

	provider, err := catalog.LoadFile(rankCandidates)
	if err != nil {
		return err
	}

	r := ranker.Ranker{Workers: cfg.Ranking.Workers}
	recs := ranker.Top(r.Rank(in, provider.All()), rankLimit)

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, recs)
}
