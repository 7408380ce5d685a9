package tasks

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/hanshat/infinitunes/internal/formatter"
	"github.com/hanshat/infinitunes/internal/meta"
	"github.com/hanshat/infinitunes/internal/models"
	"github.com/hanshat/infinitunes/internal/shared"
	"golang.org/x/time/rate"
)

// AlbumDownloadOpts contains configuration for concurrent album downloads.
type AlbumDownloadOpts struct {
	Quality    models.Quality // Audio quality tier (default: high)
	OutputDir  string         // Base output directory (default: album_{epoch})
	NumWorkers int            // Concurrent workers (default: 4, max: 8)
	RateLimit  float64        // Downloads started per second (default: 2)
}

// trackDownloadJob pairs a track with its position in the album for progress reporting.
type trackDownloadJob struct {
	index int
	song  models.Song
}

// DownloadAlbum downloads every track of an album concurrently with rate limiting and progress tracking.
//
// This method implements a worker pool pattern to download tracks efficiently.
// It respects the rate limit, handles partial failures gracefully, and writes a manifest file summarizing the run.
func (e *MediaEngine) DownloadAlbum(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	albumID string,
	opts AlbumDownloadOpts,
) (*AlbumRunResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrAPIRequest)
	}

	if opts.Quality == "" {
		opts.Quality = models.QualityHigh
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	e.sendProgress(progress, fetchAlbumUpdate(1, 1, albumID))

	album, err := e.catalog.Album(ctx, albumID)
	if err != nil {
		return nil, err
	}

	if opts.OutputDir == "" {
		if e.dir != "" {
			opts.OutputDir = filepath.Join(e.dir, shared.Slugify(shared.DecodeEntities(album.Name)))
		} else {
			opts.OutputDir = fmt.Sprintf("album_%d", time.Now().Unix())
		}
	}

	total := len(album.Songs)
	result := &AlbumRunResult{
		Album:           album,
		TotalTracks:     total,
		OutputDirectory: opts.OutputDir,
		Results:         make([]TrackDownloadResult, 0, total),
	}

	e.sendProgress(progress, foundAlbumUpdate(1, 1, album))
	e.sendProgress(progress, downloadTrackUpdate(0, total, nil))

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan trackDownloadJob, total)
	results := make(chan TrackDownloadResult, total)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.downloadWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		for i, song := range album.Songs {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				close(jobs)
				return
			}

			jobs <- trackDownloadJob{index: i, song: song}
			e.sendProgress(progress, downloadTrackUpdate(i+1, total, &song))
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessCount++
			e.sendProgress(progress, trackCompletedUpdate(completed, total, res.Song.Name, res.Path))
			e.record(progress, &res.Song, opts.Quality, res.Path)
		} else {
			result.FailedCount++
			e.sendProgress(progress, trackFailedUpdate(completed, total, res.Song.Name, res.Error))
		}
	}

	if result.SuccessCount == 0 && total > 0 {
		return result, fmt.Errorf("%w: no tracks could be downloaded", shared.ErrDownloadFailed)
	}

	manifestPath := filepath.Join(opts.OutputDir, "download_manifest.json")
	manifest := map[string]any{
		"album_id":     album.ItemID,
		"album_name":   shared.DecodeEntities(album.Name),
		"quality":      string(opts.Quality),
		"total_tracks": result.TotalTracks,
		"succeeded":    result.SuccessCount,
		"failed":       result.FailedCount,
	}
	if err := formatter.WriteManifest(manifest, manifestPath); err != nil {
		return result, fmt.Errorf("download completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// downloadWorker is a worker goroutine that downloads tracks from the jobs channel.
func (e *MediaEngine) downloadWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan trackDownloadJob,
	results chan<- TrackDownloadResult,
	opts AlbumDownloadOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		song := job.song
		path, err := e.resolver.DownloadSong(ctx, &song, opts.Quality, opts.OutputDir)
		results <- TrackDownloadResult{
			Song:    song,
			Path:    path,
			Success: err == nil,
			Error:   err,
		}
	}
}

// ExportAlbum writes an album's track listing to the requested format.
func (e *MediaEngine) ExportAlbum(ctx context.Context, progress chan<- ProgressUpdate, albumID, format, outputDir string) (*AlbumExportResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrAPIRequest)
	}

	e.sendProgress(progress, fetchAlbumUpdate(1, 1, albumID))

	album, err := e.catalog.Album(ctx, albumID)
	if err != nil {
		return nil, err
	}

	result := &AlbumExportResult{
		AlbumID:   album.ItemID,
		AlbumName: shared.DecodeEntities(album.Name),
		Format:    format,
		Files:     []string{},
	}

	e.sendProgress(progress, exportingAlbumUpdate(1, 1, album.Name, format))

	switch format {
	case "csv":
		base := filepath.Join(outputDir, album.ItemID)
		csvRes, err := formatter.WriteCSVExport(album, base)
		if err != nil {
			return result, fmt.Errorf("CSV export failed: %w", err)
		}
		result.Files = []string{csvRes.TracksFile, csvRes.MetadataFile}

	case "markdown":
		dir := filepath.Join(outputDir, album.ItemID)
		imageURL := meta.SelectImage(album.Image, models.ImageLarge)
		if imageURL == meta.PlaceholderImage {
			imageURL = ""
		}
		mdRes, err := formatter.WriteMarkdownExport(album, dir, imageURL)
		if err != nil {
			return result, fmt.Errorf("markdown export failed: %w", err)
		}
		result.Files = mdRes.Files

	case "txt":
		txtPath := filepath.Join(outputDir, fmt.Sprintf("%s_tracks.txt", album.ItemID))
		path, err := formatter.WriteTextExport(album, txtPath)
		if err != nil {
			return result, fmt.Errorf("text export failed: %w", err)
		}
		result.Files = []string{path}

	case "json", "":
		jsonPath := filepath.Join(outputDir, fmt.Sprintf("%s.json", album.ItemID))
		if err := formatter.WriteManifest(album, jsonPath); err != nil {
			return result, fmt.Errorf("JSON export failed: %w", err)
		}
		result.Files = []string{jsonPath}

	default:
		return result, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}

	return result, nil
}
