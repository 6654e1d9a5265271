package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/moodmatch/internal/intent"
	"github.com/vijay-prabhu/moodmatch/internal/output"
)

var parseCmd = &cobra.Command{
	Use:   "parse <text...>",
	Short: "Parse mood text into an intent",
	Long: `Show what moodmatch understands from a mood description.

Examples:
  moodmatch parse "stressed, want a thriller but not horror"
  moodmatch parse something funny and quick on tv -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	extractor := intent.NewExtractor(cfg.KeywordTables())
	in, err := extractor.Extract(strings.Join(args, " "))
	if err != nil {
		return err
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, in)
}
