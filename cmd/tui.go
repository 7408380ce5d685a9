package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hanshat/infinitunes/internal/models"
	"github.com/hanshat/infinitunes/internal/shared"
	"github.com/hanshat/infinitunes/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing and downloading.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	quality := models.QualityHigh
	if flag := cmd.String("quality"); flag != "" {
		parsed, err := models.ParseQuality(flag)
		if err != nil {
			return err
		}
		quality = parsed
	} else if r.config.Download.Quality != "" {
		if parsed, err := models.ParseQuality(r.config.Download.Quality); err == nil {
			quality = parsed
		}
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/infinitunes-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	engine, db := r.downloadEngine("")
	if db != nil {
		defer db.Close()
	}

	model := ui.NewModel(ctx, r.store, r.catalog, engine, quality)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
