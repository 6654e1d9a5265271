package database

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Run is one recorded recommendation request and the intent parsed from it
type Run struct {
	ID             string    `json:"id"`
	Query          string    `json:"query"`
	Mood           *string   `json:"mood"`
	EnergyLevel    *string   `json:"energy_level"`
	Genres         []string  `json:"genres"`
	AvoidGenres    []string  `json:"avoid_genres"`
	ContentType    string    `json:"content_type"`
	TimeCommitment *string   `json:"time_commitment"`
	Confidence     float64   `json:"confidence"`
	Provider       string    `json:"provider"`
	CandidateCount int       `json:"candidate_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// Recommendation is a ranked title saved with its run
type Recommendation struct {
	ID          string    `json:"id"`
	RunID       string    `json:"run_id"`
	Position    int       `json:"position"` // 1-based rank
	MovieID     int       `json:"movie_id"`
	Title       string    `json:"title"`
	Rating      float64   `json:"rating"`
	Popularity  float64   `json:"popularity"`
	Genres      []string  `json:"genres"`
	Runtime     int       `json:"runtime"`
	Overview    *string   `json:"overview,omitempty"`
	Score       float64   `json:"score"`
	Explanation []string  `json:"explanation"`
	CreatedAt   time.Time `json:"created_at"`
}

// RunDetail is a run together with its saved recommendations
type RunDetail struct {
	Run             Run              `json:"run"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Stats represents aggregate statistics
type Stats struct {
	TotalRuns            int            `json:"total_runs"`
	TotalRecommendations int            `json:"total_recommendations"`
	AvgConfidence        float64        `json:"avg_confidence"`
	SeriesRuns           int            `json:"series_runs"`
	Moods                map[string]int `json:"moods"`
	Genres               map[string]int `json:"genres"`
	AvoidGenres          map[string]int `json:"avoid_genres"`
}

// ListOptions contains options for listing runs
type ListOptions struct {
	Mood   *string
	Since  *time.Time
	Limit  int
	Offset int
}

// NullString is a helper to convert *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// OptionalString returns nil for the empty string
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// encodeList stores a string slice as a JSON array, never null
func encodeList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(list)
	return string(data)
}

// decodeList reads a JSON array column; bad data yields an empty list
func decodeList(s string) []string {
	list := []string{}
	if s == "" {
		return list
	}
	if err := json.Unmarshal([]byte(s), &list); err != nil || list == nil {
		return []string{}
	}
	return list
}
