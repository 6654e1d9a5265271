package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vijay-prabhu/moodmatch/internal/catalog"
	"github.com/vijay-prabhu/moodmatch/internal/config"
	"github.com/vijay-prabhu/moodmatch/internal/database"
)

func setupTestServer(t *testing.T) (*Server, *database.DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mcp-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	db, err := database.Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open database: %v", err)
	}

	provider := catalog.NewStaticProvider([]catalog.Movie{
		{ID: 1, Title: "Scream", Rating: 7.4, Popularity: 20, Genres: []string{"horror", "thriller"}},
		{ID: 2, Title: "Heat", Rating: 8.3, Popularity: 20, Genres: []string{"thriller", "crime"}},
	})

	cfg := config.Default()
	cfg.Keywords.Genres = map[string][]string{"western": {"cowboy"}}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}
	return New(db, cfg, provider), db, cleanup
}

// call sends a tools/call request and returns the text content and error flag
func call(t *testing.T, s *Server, tool, args string) (string, bool) {
	t.Helper()

	msg := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"` + tool + `","arguments":` + args + `}}`
	resp := s.handleMessage(context.Background(), msg)
	if resp == nil {
		t.Fatal("expected a response")
	}
	if resp.Error != nil {
		t.Fatalf("rpc error: %+v", resp.Error)
	}

	result, ok := resp.Result.(callToolResult)
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	return result.Content[0].Text, result.IsError
}

func TestHandleMessage_Protocol(t *testing.T) {
	s, _, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name     string
		msg      string
		wantNil  bool
		wantCode int
	}{
		{"initialize", `{"jsonrpc":"2.0","id":1,"method":"initialize"}`, false, 0},
		{"notification", `{"jsonrpc":"2.0","method":"notifications/initialized"}`, true, 0},
		{"blank line", "   \n", true, 0},
		{"parse error", `{not json`, false, -32700},
		{"unknown method", `{"jsonrpc":"2.0","id":2,"method":"nope"}`, false, -32601},
		{"unknown tool", `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"nope"}}`, false, -32602},
		{"unknown resource", `{"jsonrpc":"2.0","id":4,"method":"resources/read","params":{"uri":"moodmatch://nope"}}`, false, -32602},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.handleMessage(ctx, tt.msg)
			if tt.wantNil {
				if resp != nil {
					t.Errorf("expected no response, got %+v", resp)
				}
				return
			}
			if resp == nil {
				t.Fatal("expected a response")
			}
			if tt.wantCode == 0 && resp.Error != nil {
				t.Errorf("unexpected error: %+v", resp.Error)
			}
			if tt.wantCode != 0 && (resp.Error == nil || resp.Error.Code != tt.wantCode) {
				t.Errorf("error = %+v, want code %d", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestParseIntentTool(t *testing.T) {
	s, _, cleanup := setupTestServer(t)
	defer cleanup()

	text, isErr := call(t, s, "parse_intent", `{"text":"stressed, want a thriller but not horror"}`)
	if isErr {
		t.Fatalf("tool error: %s", text)
	}

	var got map[string]interface{}
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", text, err)
	}
	if got["mood"] != "stressed" || got["energyLevel"] != "low" || got["timeCommitment"] != nil {
		t.Errorf("intent = %v", got)
	}

	// Configured keywords apply
	text, _ = call(t, s, "parse_intent", `{"text":"a cowboy film"}`)
	if !strings.Contains(text, `"western"`) {
		t.Errorf("expected configured genre in %s", text)
	}

	for _, args := range []string{`{}`, `{"text":null}`} {
		text, isErr = call(t, s, "parse_intent", args)
		if !isErr || !strings.Contains(text, "invalid input text") {
			t.Errorf("parse_intent(%s) = %q, %v; want invalid input error", args, text, isErr)
		}
	}
}

func TestRankMoviesTool(t *testing.T) {
	s, _, cleanup := setupTestServer(t)
	defer cleanup()

	args := `{
		"intent": {"genres": [], "avoidGenres": [], "contentType": "movie", "timeCommitment": "short", "confidence": 0.4},
		"candidates": [
			{"id": 1, "title": "Epic", "rating": 8.0, "popularity": 50, "genres": [], "runtime": 200},
			{"id": 2, "title": "Quick", "rating": 8.0, "popularity": 50, "genres": [], "runtime": 90}
		]
	}`
	text, isErr := call(t, s, "rank_movies", args)
	if isErr {
		t.Fatalf("tool error: %s", text)
	}

	var got rankMoviesResult
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(got.Recommendations))
	}
	if got.Recommendations[0].Candidate.Title != "Quick" || got.Recommendations[1].Score != 33.0 {
		t.Errorf("ranking = %+v", got.Recommendations)
	}

	_, isErr = call(t, s, "rank_movies", `{"text":"funny","candidates":[{"title":"","rating":5}]}`)
	if !isErr {
		t.Error("expected validation error for empty title")
	}

	_, isErr = call(t, s, "rank_movies", `{"candidates":[]}`)
	if !isErr {
		t.Error("expected error without text or intent")
	}
}

func TestToolsWithoutArguments(t *testing.T) {
	s, _, cleanup := setupTestServer(t)
	defer cleanup()

	tests := []struct {
		tool    string
		wantMsg string
	}{
		{"rank_movies", "either text or intent is required"},
		{"get_run", "id is required"},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			msg := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"` + tt.tool + `"}}`
			resp := s.handleMessage(context.Background(), msg)
			if resp == nil || resp.Error != nil {
				t.Fatalf("unexpected response: %+v", resp)
			}
			result, ok := resp.Result.(callToolResult)
			if !ok {
				t.Fatalf("unexpected result type %T", resp.Result)
			}
			if !result.IsError {
				t.Fatal("expected a tool error")
			}
			if !strings.Contains(result.Content[0].Text, tt.wantMsg) {
				t.Errorf("error text = %q, want %q", result.Content[0].Text, tt.wantMsg)
			}
		})
	}
}

func TestRecommendAndHistoryTools(t *testing.T) {
	s, db, cleanup := setupTestServer(t)
	defer cleanup()

	text, isErr := call(t, s, "recommend", `{"text":"something intense but not horror","limit":1}`)
	if isErr {
		t.Fatalf("tool error: %s", text)
	}

	var result struct {
		RunID           string `json:"runId"`
		Recommendations []struct {
			Candidate struct {
				Title string `json:"title"`
			} `json:"candidate"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.RunID == "" || len(result.Recommendations) != 1 || result.Recommendations[0].Candidate.Title != "Heat" {
		t.Fatalf("recommend result = %s", text)
	}

	text, isErr = call(t, s, "list_history", `{"limit":5}`)
	if isErr || !strings.Contains(text, result.RunID) {
		t.Errorf("list_history = %s", text)
	}

	text, isErr = call(t, s, "get_run", `{"id":"`+result.RunID[:8]+`"}`)
	if isErr || !strings.Contains(text, "Heat") {
		t.Errorf("get_run = %s", text)
	}

	_, isErr = call(t, s, "get_run", `{"id":"missing"}`)
	if !isErr {
		t.Error("expected error for missing run")
	}

	// save=false leaves history untouched
	call(t, s, "recommend", `{"text":"funny","save":false}`)
	runs, err := db.ListRuns(context.Background(), database.ListOptions{})
	if err != nil {
		t.Fatalf("ListRuns() error: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("got %d runs, want 1", len(runs))
	}
}

func TestResources(t *testing.T) {
	s, _, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	text, err := s.handleReadResource(ctx, "moodmatch://recent")
	if err != nil || !strings.Contains(text, "No runs yet") {
		t.Errorf("recent = %q, %v", text, err)
	}

	text, err = s.handleReadResource(ctx, "moodmatch://keywords")
	if err != nil {
		t.Fatalf("keywords error: %v", err)
	}
	for _, want := range []string{"stressed", "burnt out", "western", "cowboy", "binge"} {
		if !strings.Contains(text, want) {
			t.Errorf("keywords missing %q", want)
		}
	}

	text, err = s.handleReadResource(ctx, "moodmatch://stats")
	if err != nil || !strings.Contains(text, "Total runs:            0") {
		t.Errorf("stats = %q, %v", text, err)
	}
}

func TestServe(t *testing.T) {
	s, _, cleanup := setupTestServer(t)
	defer cleanup()

	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}
{"jsonrpc":"2.0","method":"initialized"}
{"jsonrpc":"2.0","id":2,"method":"resources/list"}`)
	var out strings.Builder

	if err := s.Serve(context.Background(), in, &out); err != nil {
		t.Fatalf("Serve() error: %v", err)
	}

	scanner := bufio.NewScanner(strings.NewReader(out.String()))
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("got %d responses, want 2:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], `"parse_intent"`) {
		t.Errorf("tools/list response = %s", lines[0])
	}
	if !strings.Contains(lines[1], "moodmatch://keywords") {
		t.Errorf("resources/list response = %s", lines[1])
	}
}
