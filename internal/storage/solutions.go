package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SolutionRecord is a cached external solver answer.
type SolutionRecord struct {
	Facelets  string
	Solution  string
	Source    string
	CreatedAt time.Time
	Hits      int
}

// SolutionRepository caches solver answers by facelet-identity string.
type SolutionRepository struct {
	db *DB
}

// NewSolutionRepository creates a new solution repository.
func NewSolutionRepository(db *DB) *SolutionRepository {
	return &SolutionRepository{db: db}
}

// Get returns the cached answer for facelets and counts the hit. It returns
// nil when nothing is cached.
func (r *SolutionRepository) Get(facelets string) (*SolutionRecord, error) {
	var s SolutionRecord
	var createdAt string

	err := r.db.QueryRow(`
		SELECT facelets, solution, source, created_at, hits
		FROM solutions
		WHERE facelets = ?
	`, facelets).Scan(&s.Facelets, &s.Solution, &s.Source, &createdAt, &s.Hits)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solution: %w", err)
	}
	s.CreatedAt = parseTime(createdAt)

	if _, err := r.db.Exec(`
		UPDATE solutions SET hits = hits + 1, last_hit_at = ? WHERE facelets = ?
	`, formatTime(time.Now()), facelets); err != nil {
		return nil, fmt.Errorf("failed to record solution hit: %w", err)
	}
	s.Hits++

	return &s, nil
}

// Put stores or replaces the answer for facelets.
func (r *SolutionRepository) Put(facelets, solution, source string) error {
	_, err := r.db.Exec(`
		INSERT INTO solutions (facelets, solution, source, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (facelets) DO UPDATE SET
			solution = excluded.solution,
			source = excluded.source,
			created_at = excluded.created_at,
			hits = 0
	`, facelets, solution, source, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to store solution: %w", err)
	}
	return nil
}

// Count returns the number of cached solutions.
func (r *SolutionRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM solutions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count solutions: %w", err)
	}
	return count, nil
}
