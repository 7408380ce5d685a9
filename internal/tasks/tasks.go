// package tasks implements download and export operations over the catalog.
//
// The core abstraction is Engine, which orchestrates song downloads, concurrent album downloads, and album exports.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/hanshat/infinitunes/internal/download"
	"github.com/hanshat/infinitunes/internal/meta"
	"github.com/hanshat/infinitunes/internal/models"
	"github.com/hanshat/infinitunes/internal/services"
	"github.com/hanshat/infinitunes/internal/shared"
)

// TrackDownloadResult represents the outcome of downloading a single track.
type TrackDownloadResult struct {
	Song    models.Song // Track that was downloaded
	Path    string      // Destination file (empty on failure)
	Success bool        // Whether the download completed
	Error   error       // Error if the download failed
}

// AlbumRunResult contains all data from a full album download.
type AlbumRunResult struct {
	Album           *models.Album         // Album with track listing
	Results         []TrackDownloadResult // Individual track results
	SuccessCount    int                   // Number of tracks downloaded
	FailedCount     int                   // Number of failed downloads
	TotalTracks     int                   // Total tracks processed
	OutputDirectory string                // Directory tracks were written to
	ManifestPath    string                // Path of the written manifest file
}

// AlbumExportResult contains the files produced by an album export.
type AlbumExportResult struct {
	AlbumID   string   // Album identifier
	AlbumName string   // Album display name
	Format    string   // Export format used
	Files     []string // Files written
}

// DownloadRecorder persists completed downloads to the local library.
// This abstraction allows for easier testing and decoupling from concrete implementation.
type DownloadRecorder interface {
	Create(d *models.Download) error
}

// Engine defines long-running operations over the catalog.
type Engine interface {
	// DownloadSong fetches one song's details and downloads its audio at the given quality.
	DownloadSong(ctx context.Context, progress chan<- ProgressUpdate, songID string, quality models.Quality) (*TrackDownloadResult, error)

	// DownloadAlbum downloads every track of an album concurrently with rate limiting.
	DownloadAlbum(ctx context.Context, progress chan<- ProgressUpdate, albumID string, opts AlbumDownloadOpts) (*AlbumRunResult, error)

	// ExportAlbum writes an album's track listing to disk in the requested format.
	ExportAlbum(ctx context.Context, progress chan<- ProgressUpdate, albumID, format, outputDir string) (*AlbumExportResult, error)
}

// MediaEngine implements Engine for catalog download operations.
// Contains dependencies on the catalog client, the audio resolver, and an optional library recorder.
type MediaEngine struct {
	catalog  services.Catalog
	resolver *download.Resolver
	library  DownloadRecorder
	dir      string
}

// NewMediaEngine creates a new MediaEngine. The library recorder may be nil,
// in which case downloads are not recorded.
func NewMediaEngine(catalog services.Catalog, resolver *download.Resolver, library DownloadRecorder, dir string) *MediaEngine {
	return &MediaEngine{
		catalog:  catalog,
		resolver: resolver,
		library:  library,
		dir:      dir,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *MediaEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// DownloadSong fetches song details and downloads the audio file.
func (e *MediaEngine) DownloadSong(ctx context.Context, progress chan<- ProgressUpdate, songID string, quality models.Quality) (*TrackDownloadResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrAPIRequest)
	}

	e.sendProgress(progress, fetchSongUpdate(1, 1, songID))

	song, err := e.catalog.Song(ctx, songID)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, downloadTrackUpdate(1, 1, song))

	path, err := e.resolver.DownloadSong(ctx, song, quality, e.dir)
	result := &TrackDownloadResult{Song: *song, Path: path, Success: err == nil, Error: err}
	if err != nil {
		e.sendProgress(progress, trackFailedUpdate(1, 1, song.Name, err))
		return result, err
	}

	e.sendProgress(progress, trackCompletedUpdate(1, 1, song.Name, path))
	e.record(progress, song, quality, path)

	return result, nil
}

// record persists a completed download to the library. Errors are absorbed;
// a failed record never fails the download that produced it.
func (e *MediaEngine) record(progress chan<- ProgressUpdate, song *models.Song, quality models.Quality, path string) {
	if e.library == nil {
		return
	}

	e.sendProgress(progress, recordLibraryUpdate(1, 1, song.Name))

	d := models.NewDownload(song.ItemID, shared.DecodeEntities(song.Name), meta.ResolveArtists(song.CatalogItem), quality, path)
	_ = e.library.Create(d)
}
