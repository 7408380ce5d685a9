// Package library persists completed downloads in the local SQLite database.
//
// [DownloadRepository] implements models.Repository[*models.Download]. The
// schema is owned here; EnsureSchema runs at setup and is idempotent.
package library

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hanshat/infinitunes/internal/models"
	"github.com/hanshat/infinitunes/internal/shared"
)

const schema = `
CREATE TABLE IF NOT EXISTS downloads (
	id TEXT PRIMARY KEY,
	song_id TEXT NOT NULL,
	title TEXT NOT NULL,
	artists TEXT,
	quality TEXT NOT NULL,
	path TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_downloads_song_id ON downloads(song_id);
`

// EnsureSchema creates the downloads table if it does not exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create downloads schema: %w", err)
	}
	return nil
}

// DownloadRepository implements models.Repository[*models.Download].
type DownloadRepository struct {
	db *sql.DB
}

// NewDownloadRepository creates a repository backed by the given database connection.
func NewDownloadRepository(db *sql.DB) *DownloadRepository {
	return &DownloadRepository{db: db}
}

// Create inserts a new [models.Download] with a generated ID and timestamps.
func (r *DownloadRepository) Create(d *models.Download) error {
	now := time.Now()
	d.SetID(shared.GenerateID())
	d.SetTimestamps(now, now)

	if err := d.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO downloads (id, song_id, title, artists, quality, path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		d.ID(), d.SongID(), d.Title(), d.Artists(), string(d.Quality()), d.Path(), d.CreatedAt(), d.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert download: %w", err)
	}

	return nil
}

// Get retrieves a download by ID.
func (r *DownloadRepository) Get(id string) (*models.Download, error) {
	query := `
		SELECT id, song_id, title, artists, quality, path, created_at, updated_at
		FROM downloads
		WHERE id = ?
	`
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetBySongID retrieves the most recent download of a song, if any.
func (r *DownloadRepository) GetBySongID(songID string) (*models.Download, error) {
	query := `
		SELECT id, song_id, title, artists, quality, path, created_at, updated_at
		FROM downloads
		WHERE song_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRow(query, songID))
}

// Update modifies an existing download.
func (r *DownloadRepository) Update(d *models.Download) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	d.SetUpdatedAt(time.Now())

	query := `
		UPDATE downloads
		SET title = ?, artists = ?, quality = ?, path = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, d.Title(), d.Artists(), string(d.Quality()), d.Path(), d.UpdatedAt(), d.ID())
	if err != nil {
		return fmt.Errorf("failed to update download: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrNotInLibrary, d.ID())
	}

	return nil
}

// Delete removes a download record by ID.
func (r *DownloadRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM downloads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete download: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrNotInLibrary, id)
	}

	return nil
}

// List retrieves downloads matching the given criteria, newest first.
// Supported criteria keys: "song_id", "quality".
func (r *DownloadRepository) List(criteria map[string]any) ([]*models.Download, error) {
	query := `
		SELECT id, song_id, title, artists, quality, path, created_at, updated_at
		FROM downloads
	`

	var clauses []string
	var args []any
	for _, key := range []string{"song_id", "quality"} {
		if value, ok := criteria[key]; ok {
			clauses = append(clauses, key+" = ?")
			args = append(args, value)
		}
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list downloads: %w", err)
	}
	defer rows.Close()

	var downloads []*models.Download
	for rows.Next() {
		d, err := scanDownload(rows.Scan)
		if err != nil {
			return nil, err
		}
		downloads = append(downloads, d)
	}

	return downloads, rows.Err()
}

func (r *DownloadRepository) scanOne(row *sql.Row) (*models.Download, error) {
	d, err := scanDownload(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrNotInLibrary
	}
	return d, err
}

func scanDownload(scan func(...any) error) (*models.Download, error) {
	var id, songID, title, artists, quality, path string
	var createdAt, updatedAt time.Time

	if err := scan(&id, &songID, &title, &artists, &quality, &path, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan download: %w", err)
	}

	d := models.NewDownload(songID, title, artists, models.Quality(quality), path)
	d.SetID(id)
	d.SetTimestamps(createdAt, updatedAt)

	return d, nil
}

var _ models.Repository[*models.Download] = (*DownloadRepository)(nil)
