package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vijay-prabhu/moodmatch/internal/catalog"
	"github.com/vijay-prabhu/moodmatch/internal/database"
	"github.com/vijay-prabhu/moodmatch/internal/intent"
	"github.com/vijay-prabhu/moodmatch/internal/ranker"
	"github.com/vijay-prabhu/moodmatch/internal/recommender"
)

func (s *Server) registerHandlers() {
	s.handlers["parse_intent"] = s.handleParseIntent
	s.handlers["rank_movies"] = s.handleRankMovies
	s.handlers["recommend"] = s.handleRecommend
	s.handlers["list_history"] = s.handleListHistory
	s.handlers["get_run"] = s.handleGetRun
}

// errTextRequired reports a missing or null text argument as malformed input
var errTextRequired = &intent.InputError{Reason: "text is required"}

type parseIntentParams struct {
	Text *string `json:"text"`
}

func (s *Server) handleParseIntent(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p parseIntentParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	if p.Text == nil {
		return nil, errTextRequired
	}

	return s.extractor.Extract(*p.Text)
}

type rankMoviesParams struct {
	Text       *string         `json:"text"`
	Intent     *intent.Intent  `json:"intent"`
	Candidates json.RawMessage `json:"candidates"`
	Limit      int             `json:"limit"`
}

type rankMoviesResult struct {
	Intent          intent.Intent           `json:"intent"`
	Recommendations []ranker.Recommendation `json:"recommendations"`
}

func (s *Server) handleRankMovies(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p rankMoviesParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	var in intent.Intent
	switch {
	case p.Text != nil:
		parsed, err := s.extractor.Extract(*p.Text)
		if err != nil {
			return nil, err
		}
		in = parsed
	case p.Intent != nil:
		in = *p.Intent
	default:
		return nil, errors.New("either text or intent is required")
	}

	if len(p.Candidates) == 0 {
		return nil, errors.New("candidates is required")
	}
	movies, err := catalog.Decode(bytes.NewReader(p.Candidates))
	if err != nil {
		return nil, err
	}

	r := ranker.Ranker{Workers: s.config.Ranking.Workers}
	return rankMoviesResult{
		Intent:          in,
		Recommendations: ranker.Top(r.Rank(in, movies), p.Limit),
	}, nil
}

type recommendParams struct {
	Text  *string `json:"text"`
	Limit int     `json:"limit"`
	Save  *bool   `json:"save"`
}

func (s *Server) handleRecommend(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p recommendParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	if p.Text == nil {
		return nil, errTextRequired
	}

	opts := recommender.Options{Limit: p.Limit}
	if p.Save != nil && !*p.Save {
		opts.NoSave = true
	}

	return s.recommender.Recommend(ctx, *p.Text, opts)
}

type listHistoryParams struct {
	Mood      string `json:"mood"`
	SinceDays int    `json:"since_days"`
	Limit     int    `json:"limit"`
}

func (s *Server) handleListHistory(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listHistoryParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	opts := database.ListOptions{}

	if p.Mood != "" {
		mood := strings.ToLower(p.Mood)
		opts.Mood = &mood
	}

	if p.SinceDays > 0 {
		since := time.Now().AddDate(0, 0, -p.SinceDays)
		opts.Since = &since
	}

	if p.Limit > 0 {
		opts.Limit = p.Limit
	} else {
		opts.Limit = 20
	}

	runs, err := s.db.ListRuns(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return runs, nil
}

type getRunParams struct {
	ID string `json:"id"`
}

func (s *Server) handleGetRun(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getRunParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	if p.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	detail, err := s.db.GetRunDetail(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if detail == nil {
		return nil, fmt.Errorf("run not found: %s", p.ID)
	}

	return detail, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case "moodmatch://recent":
		return s.getResourceRecent(ctx)
	case "moodmatch://keywords":
		return s.getResourceKeywords(), nil
	case "moodmatch://stats":
		return s.getResourceStats(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceRecent(ctx context.Context) (string, error) {
	runs, err := s.db.ListRuns(ctx, database.ListOptions{
		Limit: 10,
	})
	if err != nil {
		return "", err
	}

	result := "Recent Runs (Last 10)\n=====================\n\n"

	if len(runs) == 0 {
		result += "No runs yet. Use the recommend tool or run 'moodmatch recommend'.\n"
		return result, nil
	}

	for _, r := range runs {
		mood := "-"
		if r.Mood != nil {
			mood = *r.Mood
		}

		top := ""
		recs, err := s.db.ListRecommendations(ctx, r.ID)
		if err != nil {
			return "", err
		}
		if len(recs) > 0 {
			top = fmt.Sprintf(" | top: %s (%.1f)", recs[0].Title, recs[0].Score)
		}

		result += fmt.Sprintf("- %s | %q | %s | %s%s\n",
			r.ID[:8], r.Query, mood, r.CreatedAt.Format("Jan 02 15:04"), top)
	}

	return result, nil
}

func (s *Server) getResourceKeywords() string {
	tables := s.extractor.Tables()

	var b strings.Builder
	writeTriggers := func(title string, triggers []intent.Trigger) {
		fmt.Fprintf(&b, "%s\n%s\n", title, strings.Repeat("=", len(title)))
		for _, t := range triggers {
			fmt.Fprintf(&b, "  %-12s %s\n", t.Category, strings.Join(t.Phrases, ", "))
		}
		b.WriteString("\n")
	}

	writeTriggers("Moods (first match wins)", tables.Moods)
	writeTriggers("Genres (all checked)", tables.Genres)
	writeTriggers("Time commitment (first match wins)", tables.Times)
	b.WriteString("Negation cues: not, no, don't want, avoid, nothing\n")

	return b.String()
}

func (s *Server) getResourceStats(ctx context.Context) (string, error) {
	stats, err := s.db.GetStats(ctx, nil)
	if err != nil {
		return "", err
	}

	result := fmt.Sprintf(`History Statistics
==================
Total runs:            %d
Series requests:       %d
Recommendations shown: %d
Avg confidence:        %.0f%%
`, stats.TotalRuns, stats.SeriesRuns, stats.TotalRecommendations, stats.AvgConfidence*100)

	if len(stats.Moods) > 0 {
		result += "\nMoods:\n"
		for _, mood := range []string{"stressed", "happy", "sad", "intense"} {
			if n := stats.Moods[mood]; n > 0 {
				result += fmt.Sprintf("  - %s: %d\n", mood, n)
			}
		}
	}

	return result, nil
}
