package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ttufts/youtube-smart-playlists/internal/models"
	"github.com/ttufts/youtube-smart-playlists/internal/shared"
)

const additionColumns = `id, sweep_id, rule, playlist_id, video_id, title, channel_title, added_at`

// AdditionRepository stores the history of videos filed by sweeps.
//
// It satisfies the sweep's recorder hook so every successful insert leaves a row behind.
type AdditionRepository struct {
	db *sql.DB
}

// NewAdditionRepository creates a new AdditionRepository with the given database connection
func NewAdditionRepository(db *sql.DB) *AdditionRepository {
	return &AdditionRepository{db: db}
}

// Create inserts an addition with a generated ID and sequence.
func (r *AdditionRepository) Create(addition *models.Addition) error {
	if err := addition.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "additions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if addition.ID == "" {
		addition.ID = shared.GenerateID()
	}

	query := `
		INSERT INTO additions (id, sequence, sweep_id, rule, playlist_id, video_id, title, channel_title, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		addition.ID,
		sequence,
		addition.SweepID,
		addition.Rule,
		addition.PlaylistID,
		addition.VideoID,
		addition.Title,
		addition.ChannelTitle,
		addition.AddedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert addition: %w", err)
	}

	return nil
}

// RecordAddition implements the sweep recorder hook.
func (r *AdditionRepository) RecordAddition(_ context.Context, addition models.Addition) error {
	return r.Create(&addition)
}

// List returns the most recent additions first. A limit of zero or less returns everything.
func (r *AdditionRepository) List(limit int) ([]models.Addition, error) {
	query := `SELECT ` + additionColumns + ` FROM additions ORDER BY sequence DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query additions: %w", err)
	}
	defer rows.Close()

	return scanAdditions(rows)
}

// ListBySweep returns the additions made by one sweep in insertion order.
func (r *AdditionRepository) ListBySweep(sweepID string) ([]models.Addition, error) {
	query := `SELECT ` + additionColumns + ` FROM additions WHERE sweep_id = ? ORDER BY sequence ASC`

	rows, err := r.db.Query(query, sweepID)
	if err != nil {
		return nil, fmt.Errorf("failed to query additions for sweep %s: %w", sweepID, err)
	}
	defer rows.Close()

	return scanAdditions(rows)
}

// Exists reports whether videoID was ever recorded as added to playlistID.
func (r *AdditionRepository) Exists(playlistID, videoID string) (bool, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(1) FROM additions WHERE playlist_id = ? AND video_id = ?`,
		playlistID, videoID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check addition: %w", err)
	}
	return count > 0, nil
}

func scanAdditions(rows *sql.Rows) ([]models.Addition, error) {
	var additions []models.Addition
	for rows.Next() {
		var a models.Addition
		if err := rows.Scan(&a.ID, &a.SweepID, &a.Rule, &a.PlaylistID, &a.VideoID, &a.Title, &a.ChannelTitle, &a.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan addition: %w", err)
		}
		additions = append(additions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating additions: %w", err)
	}
	return additions, nil
}
