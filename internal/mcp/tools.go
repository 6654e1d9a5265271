package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var candidateSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"id":         map[string]interface{}{"type": "integer"},
		"title":      map[string]interface{}{"type": "string"},
		"rating":     map[string]interface{}{"type": "number", "minimum": 0, "maximum": 10},
		"popularity": map[string]interface{}{"type": "number", "minimum": 0},
		"genres":     map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"runtime":    map[string]interface{}{"type": "integer", "description": "Minutes; 0 means unknown"},
		"overview":   map[string]interface{}{"type": "string"},
	},
	"required": []string{"title"},
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "parse_intent",
		Description: "Turn a free-text mood or preference statement into a structured intent: mood, energy, wanted and avoided genres, content type, time commitment and a confidence score.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "What the user feels like watching, e.g. \"stressed, want a thriller but not horror\"",
				},
			},
			"required": []string{"text"},
		},
	},
	{
		Name:        "rank_movies",
		Description: "Score and rank the given candidate movies against a mood text or an already parsed intent. Each result carries a score and the reasons behind it.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Mood text to parse. Either text or intent is required.",
				},
				"intent": map[string]interface{}{
					"type":        "object",
					"description": "A parsed intent as returned by parse_intent",
				},
				"candidates": map[string]interface{}{
					"type":  "array",
					"items": candidateSchema,
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: all)",
				},
			},
			"required": []string{"candidates"},
		},
	},
	{
		Name:        "recommend",
		Description: "Parse a mood text, discover matching movies or series from the catalog, rank them and save the run to history.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "What the user feels like watching",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Number of recommendations (default from config)",
				},
				"save": map[string]interface{}{
					"type":        "boolean",
					"description": "Record the run in history (default: true)",
				},
			},
			"required": []string{"text"},
		},
	},
	{
		Name:        "list_history",
		Description: "List past recommendation runs, newest first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"mood": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"stressed", "happy", "sad", "intense"},
					"description": "Only runs with this detected mood",
				},
				"since_days": map[string]interface{}{
					"type":        "integer",
					"description": "Only runs from the last N days",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 20)",
				},
			},
		},
	},
	{
		Name:        "get_run",
		Description: "Get a past run with its parsed intent and the ranked recommendations that were shown.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID or its first 8 characters",
				},
			},
			"required": []string{"id"},
		},
	},
}
