package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hanshat/infinitunes/internal/shared"
	"github.com/urfave/cli/v3"
)

// LibraryList prints recorded downloads, optionally filtered.
func (r *Runner) LibraryList(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer db.Close()

	criteria := map[string]any{}
	if quality := cmd.String("quality"); quality != "" {
		criteria["quality"] = quality
	}
	if songID := cmd.String("song"); songID != "" {
		criteria["song_id"] = songID
	}

	downloads, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list downloads: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(downloads, cmd.Bool("pretty"))
	}

	if len(downloads) == 0 {
		r.writePlain("Library is empty\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Library (%d downloads)", len(downloads)))
	for _, d := range downloads {
		r.writePlain("%s  %s - %s [%s]\n", d.CreatedAt().Format(time.DateOnly), d.Artists(), d.Title(), d.Quality())
		r.writePlain("    id=%s path=%s\n", d.ID(), d.Path())
	}

	return nil
}

// LibraryRemove deletes a download record by ID. The audio file stays on disk.
func (r *Runner) LibraryRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: download ID is required", shared.ErrMissingArgument)
	}

	db, repo, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repo.Delete(id); err != nil {
		return fmt.Errorf("failed to remove download: %w", err)
	}

	r.writePlain("✓ Removed %s from the library\n", id)
	return nil
}
