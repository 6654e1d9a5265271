package recommender

import "time"

// ProgressPhase represents the current pipeline phase
type ProgressPhase string

const (
	PhaseParsing     ProgressPhase = "parsing"
	PhaseDiscovering ProgressPhase = "discovering"
	PhaseRanking     ProgressPhase = "ranking"
	PhaseSaving      ProgressPhase = "saving"
)

// Progress represents the current pipeline progress
type Progress struct {
	Phase       ProgressPhase
	Description string    // Human-readable description
	StartedAt   time.Time // When this phase started
}

// ProgressCallback is called as the pipeline moves between phases
type ProgressCallback func(Progress)
