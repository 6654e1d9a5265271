// Package recommender runs the full pipeline: parse the mood text, discover
// candidates, rank them and record the run.
package recommender

import (
	"context"
	"fmt"
	"time"

	"github.com/vijay-prabhu/moodmatch/internal/catalog"
	"github.com/vijay-prabhu/moodmatch/internal/database"
	"github.com/vijay-prabhu/moodmatch/internal/intent"
	"github.com/vijay-prabhu/moodmatch/internal/logging"
	"github.com/vijay-prabhu/moodmatch/internal/ranker"
)

// Store persists recommendation runs
type Store interface {
	CreateRun(ctx context.Context, r *database.Run, recs []database.Recommendation) error
}

// Recommender orchestrates extraction, discovery, ranking and history
type Recommender struct {
	extractor *intent.Extractor
	provider  catalog.Provider
	ranker    ranker.Ranker
	store     Store // nil disables history
	limit     int
}

// New creates a new Recommender. store may be nil.
func New(extractor *intent.Extractor, provider catalog.Provider, store Store, workers, limit int) *Recommender {
	if extractor == nil {
		extractor = intent.New()
	}
	return &Recommender{
		extractor: extractor,
		provider:  provider,
		ranker:    ranker.Ranker{Workers: workers},
		store:     store,
		limit:     limit,
	}
}

// Options configures a single recommendation request
type Options struct {
	Limit    int  // Number of recommendations to keep (0 = configured default)
	NoSave   bool // Skip writing the run to history
	Progress ProgressCallback
}

// Result contains the outcome of a recommendation request
type Result struct {
	RunID           string                  `json:"runId,omitempty"`
	Query           string                  `json:"query"`
	Intent          intent.Intent           `json:"intent"`
	Provider        string                  `json:"provider"`
	CandidateCount  int                     `json:"candidateCount"`
	Recommendations []ranker.Recommendation `json:"recommendations"`
}

// Recommend parses text, discovers candidates and returns the top ranked ones
func (r *Recommender) Recommend(ctx context.Context, text string, opts Options) (*Result, error) {
	report := func(phase ProgressPhase, desc string) {
		if opts.Progress != nil {
			opts.Progress(Progress{Phase: phase, Description: desc, StartedAt: time.Now()})
		}
	}

	report(PhaseParsing, "Parsing mood")
	in, err := r.extractor.Extract(text)
	if err != nil {
		return nil, err
	}
	logging.Debug().
		Str("mood", string(in.Mood)).
		Strs("genres", in.Genres).
		Strs("avoid", in.AvoidGenres).
		Float64("confidence", in.Confidence).
		Msg("parsed intent")

	report(PhaseDiscovering, "Discovering candidates from "+r.provider.Name())
	movies, err := r.discover(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to discover candidates: %w", err)
	}

	report(PhaseRanking, fmt.Sprintf("Ranking %d candidates", len(movies)))
	limit := opts.Limit
	if limit <= 0 {
		limit = r.limit
	}
	recs := ranker.Top(r.ranker.Rank(in, movies), limit)

	result := &Result{
		Query:           text,
		Intent:          in,
		Provider:        r.provider.Name(),
		CandidateCount:  len(movies),
		Recommendations: recs,
	}

	if r.store != nil && !opts.NoSave {
		report(PhaseSaving, "Saving run")
		run := NewRun(text, in, result.Provider, len(movies))
		if err := r.store.CreateRun(ctx, run, ToRecords(recs)); err != nil {
			return nil, fmt.Errorf("failed to save run: %w", err)
		}
		result.RunID = run.ID
	}

	logging.Info().
		Str("provider", result.Provider).
		Int("candidates", result.CandidateCount).
		Int("recommendations", len(recs)).
		Str("run", result.RunID).
		Msg("recommendation complete")

	return result, nil
}

// discover asks the provider for genre-filtered candidates and falls back to an
// unfiltered popular list when the filter leaves nothing to rank.
func (r *Recommender) discover(ctx context.Context, in intent.Intent) ([]catalog.Movie, error) {
	opts := catalog.DiscoverOptions{
		Series:        in.ContentType == intent.ContentSeries,
		WithGenres:    in.Genres,
		WithoutGenres: in.AvoidGenres,
	}

	movies, err := r.provider.Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	if len(movies) == 0 && len(opts.WithGenres) > 0 {
		logging.Debug().Strs("genres", opts.WithGenres).Msg("no candidates for genres, retrying without genre filter")
		opts.WithGenres = nil
		return r.provider.Discover(ctx, opts)
	}

	return movies, nil
}

// NewRun builds a history record for a parsed request
func NewRun(query string, in intent.Intent, provider string, candidates int) *database.Run {
	return &database.Run{
		Query:          query,
		Mood:           database.OptionalString(string(in.Mood)),
		EnergyLevel:    database.OptionalString(string(in.EnergyLevel)),
		Genres:         in.Genres,
		AvoidGenres:    in.AvoidGenres,
		ContentType:    string(in.ContentType),
		TimeCommitment: database.OptionalString(string(in.TimeCommitment)),
		Confidence:     in.Confidence,
		Provider:       provider,
		CandidateCount: candidates,
	}
}

// ToRecords converts ranked recommendations to history records, keeping rank order
func ToRecords(recs []ranker.Recommendation) []database.Recommendation {
	records := make([]database.Recommendation, len(recs))
	for i, rec := range recs {
		m := rec.Candidate
		records[i] = database.Recommendation{
			MovieID:     m.ID,
			Title:       m.Title,
			Rating:      m.Rating,
			Popularity:  m.Popularity,
			Genres:      m.Genres,
			Runtime:     m.Runtime,
			Overview:    database.OptionalString(m.Overview),
			Score:       rec.Score,
			Explanation: rec.Explanation,
		}
	}
	return records
}
