package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FileProvider serves candidates from a local JSON array
type FileProvider struct {
	path   string
	movies []Movie
}

// LoadFile reads and validates a JSON candidate file
func LoadFile(path string) (*FileProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open candidates: %w", err)
	}
	defer f.Close()

	movies, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &FileProvider{path: path, movies: movies}, nil
}

// Decode parses a JSON array of candidates and validates each one.
// Genre tags are lower-cased; a missing genre list becomes empty.
func Decode(r io.Reader) ([]Movie, error) {
	var movies []Movie
	if err := json.NewDecoder(r).Decode(&movies); err != nil {
		return nil, fmt.Errorf("failed to decode candidates: %w", err)
	}

	for i := range movies {
		if err := Validate(movies[i]); err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		movies[i].Genres = normalizeGenres(movies[i].Genres)
	}

	return movies, nil
}

// Validate checks a single candidate's field ranges
func Validate(m Movie) error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid candidate %q: %w", m.Title, err)
	}
	return nil
}

// NewStaticProvider wraps an in-memory candidate list
func NewStaticProvider(movies []Movie) *FileProvider {
	return &FileProvider{path: "static", movies: movies}
}

// Name returns the provider identifier
func (p *FileProvider) Name() string {
	return "file"
}

// Discover returns the candidates in file order, filtered by the options.
// Series filtering does not apply: files carry no content type.
func (p *FileProvider) Discover(ctx context.Context, opts DiscoverOptions) ([]Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := make([]Movie, 0, len(p.movies))
	for _, m := range p.movies {
		if hasAny(m.Genres, opts.WithoutGenres) {
			continue
		}
		result = append(result, m)
		if opts.MaxResults > 0 && len(result) >= opts.MaxResults {
			break
		}
	}
	return result, nil
}

// All returns every loaded candidate
func (p *FileProvider) All() []Movie {
	return append([]Movie(nil), p.movies...)
}

func normalizeGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		if g = strings.ToLower(strings.TrimSpace(g)); g != "" {
			out = append(out, g)
		}
	}
	return out
}

func hasAny(genres, excluded []string) bool {
	for _, g := range genres {
		for _, e := range excluded {
			if strings.EqualFold(g, e) {
				return true
			}
		}
	}
	return false
}
