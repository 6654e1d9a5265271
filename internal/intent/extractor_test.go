package intent

import (
	"encoding/json"
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantMood   Mood
		wantEnergy EnergyLevel
		wantGenres []string
		wantAvoid  []string
		wantType   ContentType
		wantTime   TimeCommitment
		wantConf   float64
	}{
		{
			name:       "stressed with negated horror",
			text:       "i'm exhausted but want something smart and intense, not horror",
			wantMood:   MoodStressed,
			wantEnergy: EnergyLow,
			wantGenres: []string{"thriller"},
			wantAvoid:  []string{"horror"},
			wantType:   ContentMovie,
			wantConf:   0.8,
		},
		{
			name:       "funny quick tv",
			text:       "Something FUNNY and quick to watch on TV",
			wantMood:   MoodHappy,
			wantGenres: []string{"comedy"},
			wantAvoid:  []string{},
			wantType:   ContentSeries,
			wantTime:   TimeShort,
			wantConf:   0.8,
		},
		{
			name:       "empty text only counts content type",
			text:       "",
			wantGenres: []string{},
			wantAvoid:  []string{},
			wantType:   ContentMovie,
			wantConf:   0.2,
		},
		{
			name:       "several negations cap confidence",
			text:       "I want to binge a dark sci-fi series, no romance, nothing scary",
			wantMood:   MoodIntense,
			wantEnergy: EnergyHigh,
			wantGenres: []string{"sci-fi"},
			wantAvoid:  []string{"horror", "romance"},
			wantType:   ContentSeries,
			wantTime:   TimeLong,
			wantConf:   1.0,
		},
		{
			name:       "substring inside another word still matches",
			text:       "had breakfast, anything works",
			wantGenres: []string{"action"},
			wantAvoid:  []string{},
			wantType:   ContentMovie,
			wantConf:   0.4,
		},
		{
			name:       "comma after cue does not negate",
			text:       "no, horror is great",
			wantGenres: []string{"horror"},
			wantAvoid:  []string{},
			wantType:   ContentMovie,
			wantConf:   0.4,
		},
		{
			name:       "first mood in table order wins",
			text:       "happy but tired",
			wantMood:   MoodStressed,
			wantEnergy: EnergyLow,
			wantGenres: []string{},
			wantAvoid:  []string{},
			wantType:   ContentMovie,
			wantConf:   0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.text)
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}

			if got.Mood != tt.wantMood {
				t.Errorf("Mood = %q, want %q", got.Mood, tt.wantMood)
			}
			if got.EnergyLevel != tt.wantEnergy {
				t.Errorf("EnergyLevel = %q, want %q", got.EnergyLevel, tt.wantEnergy)
			}
			if !reflect.DeepEqual(got.Genres, tt.wantGenres) {
				t.Errorf("Genres = %v, want %v", got.Genres, tt.wantGenres)
			}
			if !reflect.DeepEqual(got.AvoidGenres, tt.wantAvoid) {
				t.Errorf("AvoidGenres = %v, want %v", got.AvoidGenres, tt.wantAvoid)
			}
			if got.ContentType != tt.wantType {
				t.Errorf("ContentType = %q, want %q", got.ContentType, tt.wantType)
			}
			if got.TimeCommitment != tt.wantTime {
				t.Errorf("TimeCommitment = %q, want %q", got.TimeCommitment, tt.wantTime)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
		})
	}
}

func TestExtract_InvalidInput(t *testing.T) {
	_, err := Extract(string([]byte{0xff, 0xfe, 'h', 'i'}))
	if err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Errorf("expected *InputError, got %T", err)
	}
}

func TestExtract_NeverBothWantedAndAvoided(t *testing.T) {
	texts := []string{
		"not horror, although horror classics are fine",
		"avoid comedy, i need a laugh",
		"no action please, something fast",
		"nothing emotional, drama is ok",
	}

	for _, text := range texts {
		got, err := Extract(text)
		if err != nil {
			t.Fatalf("Extract(%q) error: %v", text, err)
		}
		for _, g := range got.Genres {
			if slices.Contains(got.AvoidGenres, g) {
				t.Errorf("Extract(%q): %q in both genres and avoidGenres", text, g)
			}
		}
	}
}

func TestExtract_ConfidenceMonotonic(t *testing.T) {
	// Each text adds one more signal category than the previous one
	texts := []string{
		"anything",
		"anything funny",
		"anything funny when tired",
		"anything funny and quick when tired",
		"anything funny and quick when tired, maybe a thriller",
		"anything funny and quick when tired, maybe a thriller or some action",
	}

	prev := -1.0
	for _, text := range texts {
		got, err := Extract(text)
		if err != nil {
			t.Fatalf("Extract(%q) error: %v", text, err)
		}
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Errorf("Extract(%q) confidence %v out of range", text, got.Confidence)
		}
		if got.Confidence < prev {
			t.Errorf("Extract(%q) confidence %v dropped below %v", text, got.Confidence, prev)
		}
		prev = got.Confidence
	}
}

func TestEnergyFor(t *testing.T) {
	tests := []struct {
		mood     Mood
		expected EnergyLevel
	}{
		{MoodStressed, EnergyLow},
		{MoodIntense, EnergyHigh},
		{MoodHappy, ""},
		{MoodSad, ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := EnergyFor(tt.mood); got != tt.expected {
			t.Errorf("EnergyFor(%q) = %q, want %q", tt.mood, got, tt.expected)
		}
	}
}

func TestIntent_JSON(t *testing.T) {
	got, err := Extract("nothing in particular")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	out := string(data)
	for _, want := range []string{
		`"mood":null`,
		`"energyLevel":null`,
		`"genres":[]`,
		`"avoidGenres":[]`,
		`"contentType":"movie"`,
		`"timeCommitment":null`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON %s missing %s", out, want)
		}
	}
}

func TestExtractor_WithExtraKeywords(t *testing.T) {
	tables := DefaultTables().WithExtra(
		map[string][]string{"unknown-mood": {"meh"}},
		map[string][]string{"Thriller": {"Whodunit"}, "western": {"cowboy"}},
		nil,
	)
	e := NewExtractor(tables)

	got, err := e.Extract("a whodunit with cowboys")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	want := []string{"thriller", "western"}
	if !reflect.DeepEqual(got.Genres, want) {
		t.Errorf("Genres = %v, want %v", got.Genres, want)
	}
	if got.Confidence != 0.6 {
		t.Errorf("Confidence = %v, want 0.6", got.Confidence)
	}
	if len(tables.Moods) != len(DefaultTables().Moods) {
		t.Errorf("unknown mood category should be ignored, got %d moods", len(tables.Moods))
	}

	// Built-in tables must stay untouched
	for _, g := range DefaultTables().Genres {
		if g.Category == "western" {
			t.Error("WithExtra leaked into the default tables")
		}
	}
}
