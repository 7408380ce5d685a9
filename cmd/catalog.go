package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/hanshat/infinitunes/internal/meta"
	"github.com/hanshat/infinitunes/internal/models"
	"github.com/hanshat/infinitunes/internal/shared"
	"github.com/urfave/cli/v3"
)

// catalogLinkQuery converts a pasted share link into search terms. Share
// links carry the entity slug right after the content type segment
// (jiosaavn.com/song/<slug>/<token>); hyphens separate words.
func catalogLinkQuery(link string) string {
	parts := strings.Split(strings.TrimRight(link, "/"), "/")
	for i, part := range parts {
		switch strings.ToLower(part) {
		case "song", "shows", "album", "artist", "featured":
			if i+1 < len(parts) {
				return strings.ReplaceAll(parts[i+1], "-", " ")
			}
		}
	}
	return strings.ReplaceAll(parts[len(parts)-1], "-", " ")
}

// resolveCatalogArg accepts either a catalog ID or a share link. Links are
// resolved to an ID by searching the entity slug and taking the first result
// of the wanted type.
func (r *Runner) resolveCatalogArg(ctx context.Context, arg, wantType string) (string, error) {
	if !shared.IsValidCatalogLink(arg) {
		if strings.Contains(arg, "://") {
			return "", fmt.Errorf("%w: %q is not a recognized catalog link", shared.ErrInvalidInput, arg)
		}
		return arg, nil
	}

	query := catalogLinkQuery(arg)
	r.logger.Info("resolving share link", "query", query, "type", wantType)

	results, err := r.catalog.Search(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to resolve link: %w", err)
	}

	for _, item := range results {
		if item.Type == wantType {
			return item.ItemID, nil
		}
	}

	return "", fmt.Errorf("%w: no %s matches link %q", shared.ErrInvalidInput, wantType, arg)
}

// SongDetails fetches and renders a single song.
func (r *Runner) SongDetails(ctx context.Context, cmd *cli.Command) error {
	songID := cmd.StringArg("id")
	if songID == "" {
		return fmt.Errorf("%w: song ID or share link is required", shared.ErrMissingArgument)
	}

	songID, err := r.resolveCatalogArg(ctx, songID, "song")
	if err != nil {
		return err
	}

	r.logger.Info("fetching song", "id", songID)

	song, err := r.catalog.Song(ctx, songID)
	if err != nil {
		return fmt.Errorf("failed to fetch song: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(song, cmd.Bool("pretty"))
	}

	r.writePlainHeader(shared.DecodeEntities(song.Name))
	r.writePlain("Artists: %s\n", meta.ResolveArtists(song.CatalogItem))
	if song.Album != "" {
		r.writePlain("Album: %s\n", shared.DecodeEntities(song.Album))
	}
	r.writePlain("Duration: %s\n", meta.FormatDuration(song.Duration))
	if song.Year != "" {
		r.writePlain("Year: %s\n", song.Year)
	}
	if song.Language != "" {
		r.writePlain("Language: %s\n", song.Language)
	}
	r.writePlain("Artwork: %s\n", meta.SelectImage(song.Image, models.ImageLarge))

	return nil
}

// AlbumDetails fetches and renders an album with its track list.
func (r *Runner) AlbumDetails(ctx context.Context, cmd *cli.Command) error {
	albumID := cmd.StringArg("id")
	if albumID == "" {
		return fmt.Errorf("%w: album ID or share link is required", shared.ErrMissingArgument)
	}

	albumID, err := r.resolveCatalogArg(ctx, albumID, "album")
	if err != nil {
		return err
	}

	r.logger.Info("fetching album", "id", albumID)

	album, err := r.catalog.Album(ctx, albumID)
	if err != nil {
		return fmt.Errorf("failed to fetch album: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(album, cmd.Bool("pretty"))
	}

	r.writePlainHeader(shared.DecodeEntities(album.Name))
	r.writePlain("Artists: %s\n", meta.ResolveArtists(album.CatalogItem))
	if album.Year != "" {
		r.writePlain("Year: %s\n", album.Year)
	}
	r.writePlain("Tracks: %d\n\n", len(album.Songs))

	for i, song := range album.Songs {
		r.writePlain("%d. %s - %s [%s]\n",
			i+1,
			meta.ResolveArtists(song.CatalogItem),
			shared.DecodeEntities(song.Name),
			meta.FormatDuration(song.Duration),
		)
	}

	return nil
}

// AlbumExport fetches an album and writes its metadata in the chosen format.
func (r *Runner) AlbumExport(ctx context.Context, cmd *cli.Command) error {
	albumID := cmd.StringArg("id")
	if albumID == "" {
		return fmt.Errorf("%w: album ID is required", shared.ErrMissingArgument)
	}

	format := cmd.String("format")
	outputDir := cmd.String("output")

	r.logger.Info("exporting album", "id", albumID, "format", format)

	result, err := r.engine.ExportAlbum(ctx, nil, albumID, format, outputDir)
	if err != nil {
		return fmt.Errorf("failed to export album: %w", err)
	}

	r.writePlain("✓ Exported '%s' as %s\n", result.AlbumName, result.Format)
	for _, f := range result.Files {
		r.writePlain("  %s\n", f)
	}

	return nil
}

// rankedItem pairs a catalog entry with its query similarity for sorting.
type rankedItem struct {
	item  models.CatalogItem
	score float64
}

// SearchCatalog searches songs and albums, ranked by similarity to the query.
func (r *Runner) SearchCatalog(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	limit := cmd.Int("limit")

	// Pasted share links search by their entity slug.
	if shared.IsValidCatalogLink(query) {
		query = catalogLinkQuery(query)
	}

	r.logger.Info("searching catalog", "query", query)

	results, err := r.catalog.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	ranked := rankResults(query, results)
	if limit > 0 && len(ranked) > int(limit) {
		ranked = ranked[:limit]
	}

	if cmd.Bool("json") {
		items := make([]models.CatalogItem, len(ranked))
		for i, rr := range ranked {
			items[i] = rr.item
		}
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	if len(ranked) == 0 {
		r.writePlain("No results for %q\n", query)
		return nil
	}

	r.writePlainln("Results for %q:", query)
	for i, rr := range ranked {
		name := shared.DecodeEntities(rr.item.Name)
		if artists := meta.ResolveArtists(rr.item); artists != "" {
			r.writePlain("%d. [%s] %s - %s (%s)\n", i+1, rr.item.Type, name, artists, rr.item.ItemID)
		} else {
			r.writePlain("%d. [%s] %s (%s)\n", i+1, rr.item.Type, name, rr.item.ItemID)
		}
	}

	return nil
}

// rankResults orders results by Jaro-Winkler similarity between the query and
// the entry's name plus artists. The API's own ordering breaks ties.
func rankResults(query string, items []models.CatalogItem) []rankedItem {
	jw := metrics.NewJaroWinkler()
	q := strings.ToLower(query)

	ranked := make([]rankedItem, len(items))
	for i, item := range items {
		candidate := strings.ToLower(shared.DecodeEntities(item.Name) + " " + meta.ResolveArtists(item))
		ranked[i] = rankedItem{item: item, score: strutil.Similarity(q, candidate, jw)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	return ranked
}
