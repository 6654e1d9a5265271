package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const runColumns = `id, query, mood, energy_level, genres, avoid_genres, content_type,
	time_commitment, confidence, provider, candidate_count, created_at`

// CreateRun inserts a run and its recommendations in one transaction.
// Recommendation positions are assigned from slice order.
func (db *DB) CreateRun(ctx context.Context, r *Run, recs []Recommendation) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now()

	return db.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO runs (`+runColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			r.ID, r.Query, NullString(r.Mood), NullString(r.EnergyLevel),
			encodeList(r.Genres), encodeList(r.AvoidGenres), r.ContentType,
			NullString(r.TimeCommitment), r.Confidence, r.Provider, r.CandidateCount, r.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}

		for i := range recs {
			rec := &recs[i]
			if rec.ID == "" {
				rec.ID = uuid.New().String()
			}
			rec.RunID = r.ID
			rec.Position = i + 1
			rec.CreatedAt = r.CreatedAt

			_, err := tx.ExecContext(ctx, `
				INSERT INTO recommendations (
					id, run_id, position, movie_id, title, rating, popularity,
					genres, runtime, overview, score, explanation, created_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				rec.ID, rec.RunID, rec.Position, rec.MovieID, rec.Title, rec.Rating, rec.Popularity,
				encodeList(rec.Genres), rec.Runtime, NullString(rec.Overview), rec.Score,
				encodeList(rec.Explanation), rec.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert recommendation %d: %w", rec.Position, err)
			}
		}

		return nil
	})
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (*Run, error) {
	r := &Run{}
	var mood, energy, timeCommitment sql.NullString
	var genres, avoid string

	if err := s.Scan(
		&r.ID, &r.Query, &mood, &energy, &genres, &avoid, &r.ContentType,
		&timeCommitment, &r.Confidence, &r.Provider, &r.CandidateCount, &r.CreatedAt,
	); err != nil {
		return nil, err
	}

	r.Mood = StringPtr(mood)
	r.EnergyLevel = StringPtr(energy)
	r.TimeCommitment = StringPtr(timeCommitment)
	r.Genres = decodeList(genres)
	r.AvoidGenres = decodeList(avoid)
	return r, nil
}

// GetRun retrieves a run by ID, or a unique ID prefix of at least 8 characters
func (db *DB) GetRun(ctx context.Context, id string) (*Run, error) {
	row := db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows && len(id) >= 8 {
		return db.getRunByPrefix(ctx, id)
	}
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (db *DB) getRunByPrefix(ctx context.Context, prefix string) (*Run, error) {
	// Plain comparison so '%' and '_' in the prefix are not wildcards
	rows, err := db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE substr(id, 1, length(?1)) = ?1 LIMIT 2`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", prefix)
	}
}

// GetRunDetail retrieves a run with its recommendations
func (db *DB) GetRunDetail(ctx context.Context, id string) (*RunDetail, error) {
	r, err := db.GetRun(ctx, id)
	if err != nil || r == nil {
		return nil, err
	}

	recs, err := db.ListRecommendations(ctx, r.ID)
	if err != nil {
		return nil, err
	}

	return &RunDetail{Run: *r, Recommendations: recs}, nil
}

// ListRuns retrieves runs, newest first, with optional filters
func (db *DB) ListRuns(ctx context.Context, opts ListOptions) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE 1=1`
	args := []interface{}{}

	if opts.Mood != nil {
		query += " AND mood = ?"
		args = append(args, *opts.Mood)
	}
	if opts.Since != nil {
		query += " AND created_at >= ?"
		args = append(args, *opts.Since)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
		if opts.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", opts.Offset)
		}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}

	return runs, rows.Err()
}

// ListRecommendations retrieves the recommendations of a run in rank order
func (db *DB) ListRecommendations(ctx context.Context, runID string) ([]Recommendation, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, run_id, position, movie_id, title, rating, popularity,
		       genres, runtime, overview, score, explanation, created_at
		FROM recommendations WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []Recommendation{}
	for rows.Next() {
		rec := Recommendation{}
		var genres, explanation string
		var overview sql.NullString

		if err := rows.Scan(
			&rec.ID, &rec.RunID, &rec.Position, &rec.MovieID, &rec.Title, &rec.Rating, &rec.Popularity,
			&genres, &rec.Runtime, &overview, &rec.Score, &explanation, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}

		rec.Genres = decodeList(genres)
		rec.Explanation = decodeList(explanation)
		rec.Overview = StringPtr(overview)
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// DeleteRun removes a run and its recommendations
func (db *DB) DeleteRun(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// GetStats retrieves aggregate statistics
func (db *DB) GetStats(ctx context.Context, since *time.Time) (*Stats, error) {
	stats := &Stats{
		Moods:       map[string]int{},
		Genres:      map[string]int{},
		AvoidGenres: map[string]int{},
	}

	whereClause := ""
	args := []interface{}{}
	if since != nil {
		whereClause = "WHERE created_at >= ?"
		args = append(args, *since)
	}

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) as total,
			COALESCE(AVG(confidence), 0) as avg_confidence,
			COALESCE(SUM(CASE WHEN content_type = 'series' THEN 1 ELSE 0 END), 0) as series
		FROM runs %s
	`, whereClause)

	if err := db.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalRuns, &stats.AvgConfidence, &stats.SeriesRuns,
	); err != nil {
		return nil, err
	}

	recQuery := "SELECT COUNT(*) FROM recommendations"
	if since != nil {
		recQuery += " WHERE created_at >= ?"
	}
	if err := db.QueryRowContext(ctx, recQuery, args...).Scan(&stats.TotalRecommendations); err != nil {
		return nil, err
	}

	// Genre lists are JSON columns; tally them here
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT mood, genres, avoid_genres FROM runs %s`, whereClause), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var mood sql.NullString
		var genres, avoid string
		if err := rows.Scan(&mood, &genres, &avoid); err != nil {
			return nil, err
		}
		if mood.Valid {
			stats.Moods[mood.String]++
		}
		for _, g := range decodeList(genres) {
			stats.Genres[g]++
		}
		for _, g := range decodeList(avoid) {
			stats.AvoidGenres[g]++
		}
	}

	return stats, rows.Err()
}
