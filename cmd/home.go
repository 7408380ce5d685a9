package main

import (
	"context"
	"fmt"

	"github.com/hanshat/infinitunes/internal/meta"
	"github.com/hanshat/infinitunes/internal/models"
	"github.com/hanshat/infinitunes/internal/shared"
	"github.com/urfave/cli/v3"
)

// Home fetches the home feed and renders the trending and new-release sections.
func (r *Runner) Home(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if cmd.Bool("refresh") {
		r.store.Invalidate()
	}

	r.logger.Info("fetching home feed")

	home, err := r.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch home feed: %w", err)
	}

	// The store returns (nil, nil) when the API hands back no payload.
	if home == nil {
		r.writePlain("No home data available\n")
		return nil
	}

	if useJSON {
		return r.writeJSON(home, pretty)
	}

	r.writePlainHeader("Home")
	r.renderSection("Trending", home.Trending)
	r.renderSection("New Releases", home.Albums)
	r.renderSection("Featured Playlists", home.Playlists)
	r.renderSection("Top Charts", home.Charts)

	return nil
}

// renderSection prints one home feed section with numbered entries.
func (r *Runner) renderSection(title string, items []models.CatalogItem) {
	if len(items) == 0 {
		return
	}

	r.writePlainln("%s (%d)", title, len(items))
	for i, item := range items {
		name := shared.DecodeEntities(item.Name)
		if artists := meta.ResolveArtists(item); artists != "" {
			r.writePlain("%d. %s - %s\n", i+1, name, artists)
		} else {
			r.writePlain("%d. %s\n", i+1, name)
		}
	}
}
