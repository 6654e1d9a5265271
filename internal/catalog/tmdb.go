package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/vijay-prabhu/moodmatch/internal/logging"
)

// concurrentDetails is the number of parallel detail lookups for runtimes
const concurrentDetails = 4

// TMDBConfig configures the TMDB client
type TMDBConfig struct {
	BaseURL           string
	APIKey            string // read from TMDB_API_KEY by the config loader
	Language          string
	Timeout           time.Duration
	RequestsPerSecond float64
	MaxResults        int  // default candidate count per discovery
	FetchRuntime      bool // look up runtimes with one extra request per candidate
}

// TMDBClient discovers candidates from The Movie Database API
type TMDBClient struct {
	config     TMDBConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[[]byte]
}

type discoverResponse struct {
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	Results    []tmdbSummary `json:"results"`
}

type tmdbSummary struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"` // movies
	Name        string  `json:"name"`  // tv
	VoteAverage float64 `json:"vote_average"`
	Popularity  float64 `json:"popularity"`
	GenreIDs    []int   `json:"genre_ids"`
	Overview    string  `json:"overview"`
}

type tmdbDetails struct {
	Runtime        int   `json:"runtime"`          // movies
	EpisodeRunTime []int `json:"episode_run_time"` // tv
}

// NewTMDB creates a new TMDB client
func NewTMDB(cfg TMDBConfig) *TMDBClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 4
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 40
	}

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "tmdb",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
		// A cancelled request says nothing about TMDB health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	})

	return &TMDBClient{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		cb:         cb,
	}
}

// Name returns the provider identifier
func (c *TMDBClient) Name() string {
	return "tmdb"
}

// Discover pages through /discover until enough candidates are collected
func (c *TMDBClient) Discover(ctx context.Context, opts DiscoverOptions) ([]Movie, error) {
	if c.config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	max := opts.MaxResults
	if max <= 0 {
		max = c.config.MaxResults
	}

	path := "/discover/movie"
	if opts.Series {
		path = "/discover/tv"
	}

	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	if with := genreParam(opts.WithGenres, opts.Series, "|"); with != "" {
		params.Set("with_genres", with)
	}
	if without := genreParam(opts.WithoutGenres, opts.Series, ","); without != "" {
		params.Set("without_genres", without)
	}

	movies := make([]Movie, 0, max)
	for page := 1; len(movies) < max; page++ {
		params.Set("page", strconv.Itoa(page))

		body, err := c.get(ctx, path, params)
		if err != nil {
			return nil, err
		}

		var resp discoverResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("failed to decode discover response: %w", err)
		}

		for _, r := range resp.Results {
			if len(movies) >= max {
				break
			}
			movies = append(movies, r.toMovie(opts.Series))
		}

		if page >= resp.TotalPages || len(resp.Results) == 0 {
			break
		}
	}

	logging.Debug().Str("path", path).Int("count", len(movies)).Msg("discovered candidates")

	if c.config.FetchRuntime {
		c.fillRuntimes(ctx, movies, opts.Series)
	}

	return movies, nil
}

func (r tmdbSummary) toMovie(series bool) Movie {
	title := r.Title
	if series {
		title = r.Name
	}
	return Movie{
		ID:         r.ID,
		Title:      title,
		Rating:     r.VoteAverage,
		Popularity: r.Popularity,
		Genres:     GenreTags(r.GenreIDs, series),
		Overview:   r.Overview,
	}
}

// Runtime looks up the runtime in minutes for a single title.
// Series report their typical episode length.
func (c *TMDBClient) Runtime(ctx context.Context, id int, series bool) (int, error) {
	path := "/movie/" + strconv.Itoa(id)
	if series {
		path = "/tv/" + strconv.Itoa(id)
	}

	body, err := c.get(ctx, path, url.Values{})
	if err != nil {
		return 0, err
	}

	var d tmdbDetails
	if err := json.Unmarshal(body, &d); err != nil {
		return 0, fmt.Errorf("failed to decode details: %w", err)
	}

	if series {
		if len(d.EpisodeRunTime) == 0 {
			return 0, nil
		}
		return d.EpisodeRunTime[0], nil
	}
	return d.Runtime, nil
}

// fillRuntimes looks up runtimes in parallel. Failures leave the runtime at 0,
// which scoring treats as unknown.
func (c *TMDBClient) fillRuntimes(ctx context.Context, movies []Movie, series bool) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrentDetails)

	for i := range movies {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			runtime, err := c.Runtime(ctx, movies[index].ID, series)
			if err != nil {
				logging.Debug().Err(err).Int("id", movies[index].ID).Msg("runtime lookup failed")
				return
			}
			// Each goroutine owns its own index
			movies[index].Runtime = runtime
		}(i)
	}

	wg.Wait()
}

// get performs a rate-limited GET guarded by the circuit breaker
func (c *TMDBClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api_key", c.config.APIKey)
	if c.config.Language != "" {
		query.Set("language", c.config.Language)
	}
	endpoint := c.config.BaseURL + path + "?" + query.Encode()

	body, err := c.cb.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("tmdb request failed: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("tmdb request failed (status %d): %s", resp.StatusCode, truncate(string(data), 200))
		}

		return data, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return body, err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
