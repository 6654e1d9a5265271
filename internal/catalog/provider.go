// Package catalog supplies candidate movies and series for ranking.
package catalog

import (
	"context"
	"errors"
)

// Movie is a single rankable item. It is never modified after construction.
type Movie struct {
	ID         int      `json:"id" validate:"gte=0"`
	Title      string   `json:"title" validate:"required"`
	Rating     float64  `json:"rating" validate:"gte=0,lte=10"`
	Popularity float64  `json:"popularity" validate:"gte=0"`
	Genres     []string `json:"genres"`
	Runtime    int      `json:"runtime" validate:"gte=0"` // minutes, 0 = unknown
	Overview   string   `json:"overview"`
}

// Provider defines the interface for candidate sources
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// Discover returns candidates matching the options
	Discover(ctx context.Context, opts DiscoverOptions) ([]Movie, error)
}

// DiscoverOptions narrows the candidate set
type DiscoverOptions struct {
	Series        bool     // Discover TV series instead of movies
	WithGenres    []string // Prefer these genre tags
	WithoutGenres []string // Exclude these genre tags
	MaxResults    int      // Maximum number of candidates (0 = provider default)
}

var (
	// ErrMissingAPIKey is returned when the catalog needs credentials that are not set
	ErrMissingAPIKey = errors.New("TMDB_API_KEY not set")

	// ErrUnavailable is returned while the catalog is considered down
	ErrUnavailable = errors.New("catalog temporarily unavailable")
)
