package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/huh"
	"github.com/hanshat/infinitunes/internal/models"
	"github.com/hanshat/infinitunes/internal/shared"
	"github.com/hanshat/infinitunes/internal/tasks"
	"github.com/urfave/cli/v3"
)

// resolveQuality picks the audio quality tier for a download. Order of
// precedence: the --quality flag, the config default, then an interactive
// picker.
func (r *Runner) resolveQuality(cmd *cli.Command) (models.Quality, error) {
	if flag := cmd.String("quality"); flag != "" {
		return models.ParseQuality(flag)
	}

	if r.config.Download.Quality != "" {
		return models.ParseQuality(r.config.Download.Quality)
	}

	var picked string
	err := huh.NewSelect[string]().
		Title("Audio quality").
		Options(
			huh.NewOption("Low (12 kbps)", string(models.QualityLow)),
			huh.NewOption("Medium (48 kbps)", string(models.QualityMedium)),
			huh.NewOption("High (96 kbps)", string(models.QualityHigh)),
			huh.NewOption("Best (160 kbps)", string(models.QualityBest)),
			huh.NewOption("Lossless (320 kbps)", string(models.QualityLossless)),
		).
		Value(&picked).
		Run()
	if err != nil {
		return "", fmt.Errorf("quality selection aborted: %w", err)
	}

	return models.ParseQuality(picked)
}

// printProgress drains a progress channel to the output writer until it closes.
func (r *Runner) printProgress(progress <-chan tasks.ProgressUpdate, done *sync.WaitGroup) {
	defer done.Done()
	for update := range progress {
		r.writePlain("%s\n", update.Message)
	}
}

// DownloadSong downloads a single song by catalog ID.
func (r *Runner) DownloadSong(ctx context.Context, cmd *cli.Command) error {
	songID := cmd.StringArg("id")
	if songID == "" {
		return fmt.Errorf("%w: song ID is required", shared.ErrMissingArgument)
	}

	quality, err := r.resolveQuality(cmd)
	if err != nil {
		return err
	}

	engine, db := r.downloadEngine(cmd.String("dir"))
	if db != nil {
		defer db.Close()
	}

	r.logger.Info("downloading song", "id", songID, "quality", quality)

	progress := make(chan tasks.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go r.printProgress(progress, &wg)

	result, err := engine.DownloadSong(ctx, progress, songID, quality)
	close(progress)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	r.writePlainln("✓ Saved to %s", result.Path)
	return nil
}

// DownloadAlbum downloads every track of an album concurrently.
func (r *Runner) DownloadAlbum(ctx context.Context, cmd *cli.Command) error {
	albumID := cmd.StringArg("id")
	if albumID == "" {
		return fmt.Errorf("%w: album ID is required", shared.ErrMissingArgument)
	}

	quality, err := r.resolveQuality(cmd)
	if err != nil {
		return err
	}

	engine, db := r.downloadEngine("")
	if db != nil {
		defer db.Close()
	}

	opts := tasks.AlbumDownloadOpts{
		Quality:    quality,
		OutputDir:  cmd.String("dir"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	}

	r.logger.Info("downloading album", "id", albumID, "quality", quality, "workers", opts.NumWorkers)

	progress := make(chan tasks.ProgressUpdate, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go r.printProgress(progress, &wg)

	result, err := engine.DownloadAlbum(ctx, progress, albumID, opts)
	close(progress)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("album download failed: %w", err)
	}

	r.writePlainln("✓ %d/%d tracks saved to %s", result.SuccessCount, result.TotalTracks, result.OutputDirectory)
	if result.FailedCount > 0 {
		r.writePlain("⚠ %d tracks failed\n", result.FailedCount)
	}
	r.writePlain("Manifest: %s\n", result.ManifestPath)

	return nil
}

// downloadEngine builds a MediaEngine wired to the library database. The
// library is optional; a failure to open it degrades to an unrecorded
// download rather than an error. The caller closes the returned handle.
func (r *Runner) downloadEngine(dir string) (*tasks.MediaEngine, interface{ Close() error }) {
	if dir == "" {
		dir = r.config.Download.Dir
	}

	db, repo, err := r.openLibrary()
	if err != nil {
		r.logger.Warn("library unavailable, downloads will not be recorded", "error", err)
		return tasks.NewMediaEngine(r.catalog, r.resolver, nil, dir), nil
	}

	return tasks.NewMediaEngine(r.catalog, r.resolver, repo, dir), db
}
