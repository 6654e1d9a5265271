package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vijay-prabhu/moodmatch/internal/catalog"
	"github.com/vijay-prabhu/moodmatch/internal/database"
	"github.com/vijay-prabhu/moodmatch/internal/intent"
	"github.com/vijay-prabhu/moodmatch/internal/ranker"
)

func TestOutputTo_JSONIntent(t *testing.T) {
	in, err := intent.Extract("")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	var buf bytes.Buffer
	if err := OutputTo(&buf, "json", in); err != nil {
		t.Fatalf("OutputTo() error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if decoded["mood"] != nil {
		t.Errorf("mood = %v, want null", decoded["mood"])
	}
	if decoded["contentType"] != "movie" {
		t.Errorf("contentType = %v, want movie", decoded["contentType"])
	}
}

func TestTableTo(t *testing.T) {
	recs := ranker.Rank(intent.Intent{Genres: []string{"comedy"}}, []catalog.Movie{
		{ID: 1, Title: "Airplane!", Rating: 7.7, Popularity: 20, Genres: []string{"comedy"}, Runtime: 88},
	})

	tests := []struct {
		name string
		data interface{}
		want []string
	}{
		{"intent", intent.Intent{Mood: intent.MoodHappy, ContentType: intent.ContentMovie, Confidence: 0.4}, []string{"happy", "40%"}},
		{"recommendations", recs, []string{"Airplane!", "1h28m", "Matches genres: comedy"}},
		{"no recommendations", []ranker.Recommendation{}, []string{"No recommendations found."}},
		{"no runs", []database.Run{}, []string{"No runs found."}},
		{"stats", &database.Stats{TotalRuns: 2, AvgConfidence: 0.5, Moods: map[string]int{"sad": 2}}, []string{"Total runs:             2", "sad"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := TableTo(&buf, tt.data); err != nil {
				t.Fatalf("TableTo() error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestOutputTo_Errors(t *testing.T) {
	if err := OutputTo(&bytes.Buffer{}, "xml", nil); err == nil {
		t.Error("expected error for unknown format")
	}
	if err := TableTo(&bytes.Buffer{}, 42); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Amélie and the long title", 10); got != "Amélie ..." {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
}
