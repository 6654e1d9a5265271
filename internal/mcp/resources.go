package mcp

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         "moodmatch://recent",
		Name:        "Recent Runs",
		Description: "Last 10 recommendation runs with their top pick",
		MimeType:    "text/plain",
	},
	{
		URI:         "moodmatch://keywords",
		Name:        "Keyword Tables",
		Description: "Trigger phrases for moods, genres and time commitment, in match order",
		MimeType:    "text/plain",
	},
	{
		URI:         "moodmatch://stats",
		Name:        "History Statistics",
		Description: "Run counts and the most requested moods and genres",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
