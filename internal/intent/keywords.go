package intent

import (
	"sort"
	"strings"
)

// Trigger pairs a category with the phrases that signal it
type Trigger struct {
	Category string
	Phrases  []string
}

// Tables holds the ordered keyword tables used for extraction.
// Order matters: mood and time use first-match-wins.
type Tables struct {
	Moods  []Trigger
	Genres []Trigger
	Times  []Trigger
}

var moodTriggers = []Trigger{
	{Category: string(MoodStressed), Phrases: []string{"stressed", "tired", "exhausted", "burnt out"}},
	{Category: string(MoodHappy), Phrases: []string{"happy", "fun", "cheerful", "uplifting"}},
	{Category: string(MoodSad), Phrases: []string{"sad", "down", "lonely"}},
	{Category: string(MoodIntense), Phrases: []string{"intense", "dark", "serious"}},
}

// "intense" is shared with the intense mood on purpose; both fire.
var genreTriggers = []Trigger{
	{Category: "thriller", Phrases: []string{"thriller", "suspense", "intense"}},
	{Category: "comedy", Phrases: []string{"comedy", "funny", "laugh"}},
	{Category: "drama", Phrases: []string{"drama", "emotional"}},
	{Category: "action", Phrases: []string{"action", "fast"}},
	{Category: "horror", Phrases: []string{"horror", "scary", "creepy"}},
	{Category: "romance", Phrases: []string{"romance", "romantic", "love story"}},
	{Category: "sci-fi", Phrases: []string{"sci-fi", "science fiction", "space"}},
	{Category: "animation", Phrases: []string{"animated", "animation", "cartoon"}},
	{Category: "documentary", Phrases: []string{"documentary", "true story"}},
}

var timeTriggers = []Trigger{
	{Category: string(TimeShort), Phrases: []string{"quick", "short", "not too long"}},
	{Category: string(TimeLong), Phrases: []string{"binge", "long"}},
}

// seriesPhrases switch the content type from movie to series
var seriesPhrases = []string{"series", "show", "tv"}

// DefaultTables returns a fresh copy of the built-in keyword tables
func DefaultTables() Tables {
	return Tables{
		Moods:  copyTriggers(moodTriggers),
		Genres: copyTriggers(genreTriggers),
		Times:  copyTriggers(timeTriggers),
	}
}

// GenreNames lists the genre categories in table order
func (t Tables) GenreNames() []string {
	names := make([]string, 0, len(t.Genres))
	for _, g := range t.Genres {
		names = append(names, g.Category)
	}
	return names
}

// WithExtra returns a copy of t with additional phrases appended.
// Unknown genres become new categories after the built-in ones;
// unknown mood and time categories are ignored since those sets are closed.
func (t Tables) WithExtra(moods, genres, times map[string][]string) Tables {
	return Tables{
		Moods:  appendPhrases(copyTriggers(t.Moods), moods, false),
		Genres: appendPhrases(copyTriggers(t.Genres), genres, true),
		Times:  appendPhrases(copyTriggers(t.Times), times, false),
	}
}

func appendPhrases(triggers []Trigger, extra map[string][]string, allowNew bool) []Trigger {
	if len(extra) == 0 {
		return triggers
	}
	extra = lowerKeys(extra)

	seen := make(map[string]bool, len(extra))
	for i := range triggers {
		phrases, ok := extra[triggers[i].Category]
		if !ok {
			continue
		}
		seen[triggers[i].Category] = true
		triggers[i].Phrases = append(triggers[i].Phrases, normalizePhrases(phrases)...)
	}

	if !allowNew {
		return triggers
	}

	// Map iteration is random; keep new categories in a stable order
	var added []string
	for name := range extra {
		if !seen[name] {
			added = append(added, name)
		}
	}
	sort.Strings(added)
	for _, name := range added {
		triggers = append(triggers, Trigger{
			Category: name,
			Phrases:  normalizePhrases(extra[name]),
		})
	}

	return triggers
}

func lowerKeys(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		k = strings.ToLower(strings.TrimSpace(k))
		out[k] = append(out[k], v...)
	}
	return out
}

func normalizePhrases(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func copyTriggers(in []Trigger) []Trigger {
	out := make([]Trigger, len(in))
	for i, t := range in {
		out[i] = Trigger{
			Category: t.Category,
			Phrases:  append([]string(nil), t.Phrases...),
		}
	}
	return out
}

// firstMatch returns the first phrase contained in text, or ""
func firstMatch(text string, phrases []string) string {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return p
		}
	}
	return ""
}
