// Package intent turns a short free-text mood statement into a structured
// Intent using fixed keyword tables and substring matching.
package intent

import (
	"strings"
	"unicode/utf8"
)

// maxSignals normalizes the hit counter into a confidence value.
// It covers mood, genres, time commitment and content type.
const maxSignals = 5.0

// Extractor applies keyword tables to request text
type Extractor struct {
	tables Tables
}

// NewExtractor creates an Extractor with the given tables
func NewExtractor(tables Tables) *Extractor {
	return &Extractor{tables: tables}
}

// New creates an Extractor with the built-in tables
func New() *Extractor {
	return NewExtractor(DefaultTables())
}

// Tables returns a copy of the tables in use
func (e *Extractor) Tables() Tables {
	return Tables{
		Moods:  copyTriggers(e.tables.Moods),
		Genres: copyTriggers(e.tables.Genres),
		Times:  copyTriggers(e.tables.Times),
	}
}

var defaultExtractor = New()

// Extract parses text with the built-in tables
func Extract(text string) (Intent, error) {
	return defaultExtractor.Extract(text)
}

// Extract parses text into an Intent.
// Matching is case-insensitive substring containment with no word boundaries,
// so "fast" also fires inside "breakfast".
func (e *Extractor) Extract(text string) (Intent, error) {
	if !utf8.ValidString(text) {
		return Intent{}, &InputError{Reason: "text is not valid UTF-8"}
	}

	text = strings.ToLower(text)
	hits := 0

	result := Intent{
		Genres:      []string{},
		AvoidGenres: []string{},
	}

	// Mood: first category wins
	for _, t := range e.tables.Moods {
		if firstMatch(text, t.Phrases) != "" {
			result.Mood = Mood(t.Category)
			hits++
			break
		}
	}

	result.EnergyLevel = EnergyFor(result.Mood)

	// Genres: every category is checked
	for _, t := range e.tables.Genres {
		phrase := firstMatch(text, t.Phrases)
		if phrase == "" {
			continue
		}
		if IsNegated(text, phrase) {
			result.AvoidGenres = append(result.AvoidGenres, t.Category)
		} else {
			result.Genres = append(result.Genres, t.Category)
		}
		hits++
	}

	// Time commitment: first category wins, absent means medium
	for _, t := range e.tables.Times {
		if firstMatch(text, t.Phrases) != "" {
			result.TimeCommitment = TimeCommitment(t.Category)
			hits++
			break
		}
	}

	// Content type is always emitted, so it always counts
	result.ContentType = ContentMovie
	if firstMatch(text, seriesPhrases) != "" {
		result.ContentType = ContentSeries
	}
	hits++

	result.Confidence = min(float64(hits)/maxSignals, 1.0)

	return result, nil
}
