// Package ranker scores candidates against an Intent and orders them.
//
// Scores are a weighted sum with no fixed scale; each rule that fires adds a
// line to the explanation so a user can see why a title was picked.
package ranker

import (
	"fmt"
	"strings"

	"github.com/vijay-prabhu/moodmatch/internal/catalog"
	"github.com/vijay-prabhu/moodmatch/internal/intent"
)

// Scoring weights
const (
	GenreWeight            = 3.0
	AvoidGenrePenalty      = -8.0
	RatingWeight           = 1.5
	PopularityWeight       = 0.5
	RuntimeMismatchPenalty = -4.0
)

const fallbackExplanation = "Selected based on overall score"

// Recommendation is a scored candidate
type Recommendation struct {
	Candidate   catalog.Movie `json:"candidate"`
	Score       float64       `json:"score"`
	Explanation []string      `json:"explanation"`
}

// Score rates one candidate against the intent
func Score(in intent.Intent, m catalog.Movie) Recommendation {
	var explanation []string
	score := 0.0

	if matches := overlap(m.Genres, in.Genres); len(matches) > 0 {
		score += GenreWeight * float64(len(matches))
		explanation = append(explanation, "Matches genres: "+strings.Join(matches, ", "))
	}

	if avoided := overlap(m.Genres, in.AvoidGenres); len(avoided) > 0 {
		score += AvoidGenrePenalty * float64(len(avoided))
		explanation = append(explanation, "Contains avoided genres: "+strings.Join(avoided, ", "))
	}

	score += m.Rating * RatingWeight
	explanation = append(explanation, fmt.Sprintf("Has rating %.1f", m.Rating))

	score += m.Popularity * PopularityWeight
	explanation = append(explanation, "Popular with other viewers")

	if in.TimeCommitment != "" && m.Runtime > 0 {
		lo, hi := RuntimeRange(in.TimeCommitment)
		if m.Runtime >= lo && m.Runtime <= hi {
			explanation = append(explanation,
				fmt.Sprintf("Runtime %d minutes fits your %s preference", m.Runtime, in.TimeCommitment))
		} else {
			score += RuntimeMismatchPenalty
			explanation = append(explanation,
				fmt.Sprintf("Runtime %d minutes does not match your %s preference", m.Runtime, in.TimeCommitment))
		}
	}

	if len(explanation) == 0 {
		explanation = append(explanation, fallbackExplanation)
	}

	return Recommendation{Candidate: m, Score: score, Explanation: explanation}
}

// RuntimeRange returns the acceptable runtime window in minutes.
// Anything other than short or long uses the medium window.
func RuntimeRange(t intent.TimeCommitment) (lo, hi int) {
	switch t {
	case intent.TimeShort:
		return 0, 110
	case intent.TimeLong:
		return 130, 1000
	default:
		return 80, 180
	}
}

// overlap returns the distinct candidate genres also present in wanted,
// compared case-insensitively, in candidate order.
func overlap(genres, wanted []string) []string {
	if len(genres) == 0 || len(wanted) == 0 {
		return nil
	}

	set := make(map[string]bool, len(wanted))
	for _, w := range wanted {
		set[strings.ToLower(w)] = true
	}

	seen := make(map[string]bool)
	var out []string
	for _, g := range genres {
		key := strings.ToLower(g)
		if !set[key] || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}
