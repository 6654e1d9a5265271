package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/moodmatch/internal/database"
	"github.com/vijay-prabhu/moodmatch/internal/intent"
	"github.com/vijay-prabhu/moodmatch/internal/ranker"
	"github.com/vijay-prabhu/moodmatch/internal/recommender"
)

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case intent.Intent:
		return intentDetail(w, v)
	case *intent.Intent:
		return intentDetail(w, *v)
	case []ranker.Recommendation:
		return recommendationsTable(w, v)
	case *recommender.Result:
		return resultDetail(w, v)
	case []database.Run:
		return runsTable(w, v)
	case *database.RunDetail:
		return runDetail(w, v)
	case *database.Stats:
		return statsTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func intentDetail(w io.Writer, in intent.Intent) error {
	fmt.Fprintf(w, "Mood:        %s\n", orNone(string(in.Mood)))
	fmt.Fprintf(w, "Energy:      %s\n", orNone(string(in.EnergyLevel)))
	fmt.Fprintf(w, "Genres:      %s\n", orNone(strings.Join(in.Genres, ", ")))
	fmt.Fprintf(w, "Avoid:       %s\n", orNone(strings.Join(in.AvoidGenres, ", ")))
	fmt.Fprintf(w, "Type:        %s\n", in.ContentType)
	fmt.Fprintf(w, "Time:        %s\n", orNone(string(in.TimeCommitment)))
	fmt.Fprintf(w, "Confidence:  %.0f%%\n", in.Confidence*100)
	return nil
}

func recommendationsTable(w io.Writer, recs []ranker.Recommendation) error {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No recommendations found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Title", "Score", "Rating", "Genres", "Runtime", "Why")

	for i, r := range recs {
		m := r.Candidate
		if err := table.Append([]string{
			strconv.Itoa(i + 1),
			truncate(m.Title, 40),
			fmt.Sprintf("%.1f", r.Score),
			fmt.Sprintf("%.1f", m.Rating),
			truncate(strings.Join(m.Genres, ", "), 30),
			formatRuntime(m.Runtime),
			highlight(r.Explanation),
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func resultDetail(w io.Writer, r *recommender.Result) error {
	if err := intentDetail(w, r.Intent); err != nil {
		return err
	}
	fmt.Fprintf(w, "Candidates:  %d from %s\n", r.CandidateCount, r.Provider)
	if r.RunID != "" {
		fmt.Fprintf(w, "Run:         %s\n", r.RunID)
	}
	fmt.Fprintln(w)

	return recommendationsTable(w, r.Recommendations)
}

func runsTable(w io.Writer, runs []database.Run) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Query", "Mood", "Genres", "Type", "When")

	for _, r := range runs {
		mood := ""
		if r.Mood != nil {
			mood = *r.Mood
		}
		if err := table.Append([]string{
			shortID(r.ID),
			truncate(r.Query, 40),
			mood,
			truncate(strings.Join(r.Genres, ", "), 25),
			r.ContentType,
			formatAge(time.Since(r.CreatedAt)),
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func runDetail(w io.Writer, d *database.RunDetail) error {
	r := d.Run

	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Run: %s\n", r.ID)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Query:       %s\n", r.Query)
	fmt.Fprintf(w, "Mood:        %s\n", orNone(deref(r.Mood)))
	fmt.Fprintf(w, "Genres:      %s\n", orNone(strings.Join(r.Genres, ", ")))
	fmt.Fprintf(w, "Avoid:       %s\n", orNone(strings.Join(r.AvoidGenres, ", ")))
	fmt.Fprintf(w, "Type:        %s\n", r.ContentType)
	fmt.Fprintf(w, "Time:        %s\n", orNone(deref(r.TimeCommitment)))
	fmt.Fprintf(w, "Confidence:  %.0f%%\n", r.Confidence*100)
	fmt.Fprintf(w, "Candidates:  %d from %s\n", r.CandidateCount, r.Provider)
	fmt.Fprintf(w, "Created:     %s\n", r.CreatedAt.Format("Jan 02, 2006 3:04 PM"))
	fmt.Fprintln(w)

	if len(d.Recommendations) == 0 {
		fmt.Fprintln(w, "No recommendations saved.")
		return nil
	}

	for _, rec := range d.Recommendations {
		fmt.Fprintln(w, strings.Repeat("-", 60))
		fmt.Fprintf(w, "[%d] %s  (score %.1f)\n", rec.Position, rec.Title, rec.Score)
		for _, line := range rec.Explanation {
			fmt.Fprintf(w, "    - %s\n", line)
		}
		if rec.Overview != nil && *rec.Overview != "" {
			fmt.Fprintln(w)
			fmt.Fprintln(w, wordWrap(*rec.Overview, 78))
		}
	}

	return nil
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintln(w, "Recommendation History")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total runs:             %d\n", s.TotalRuns)
	fmt.Fprintf(w, "Series requests:        %d\n", s.SeriesRuns)
	fmt.Fprintf(w, "Recommendations shown:  %d\n", s.TotalRecommendations)

	if s.TotalRuns > 0 {
		fmt.Fprintf(w, "Avg confidence:         %.0f%%\n", s.AvgConfidence*100)
	}

	printCounts(w, "Moods", s.Moods)
	printCounts(w, "Wanted genres", s.Genres)
	printCounts(w, "Avoided genres", s.AvoidGenres)

	return nil
}

func printCounts(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", title)
	for _, kv := range sortCounts(counts) {
		fmt.Fprintf(w, "  %-20s %d\n", kv.key, kv.count)
	}
}

// highlight picks the most telling explanation line for the table view
func highlight(explanation []string) string {
	for _, line := range explanation {
		if strings.HasPrefix(line, "Matches genres") || strings.HasPrefix(line, "Contains avoided") {
			return truncate(line, 40)
		}
	}
	if len(explanation) > 0 {
		return truncate(explanation[0], 40)
	}
	return ""
}

func formatRuntime(minutes int) string {
	if minutes <= 0 {
		return "?"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func formatAge(d time.Duration) string {
	days := int(d.Hours() / 24)
	switch {
	case d < time.Hour:
		return "just now"
	case days == 0:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

type keyCount struct {
	key   string
	count int
}

// sortCounts orders tallies by count, then name
func sortCounts(counts map[string]int) []keyCount {
	out := make([]keyCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, keyCount{k, c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}

// wordWrap wraps text at the specified width
func wordWrap(text string, width int) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		if len(line) <= width {
			result.WriteString(line)
			result.WriteString("\n")
			continue
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if len(currentLine)+1+len(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)
		result.WriteString("\n")
	}

	return strings.TrimSuffix(result.String(), "\n")
}
