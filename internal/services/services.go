// package services defines interface Catalog for interacting with the music catalog HTTP API
package services

import (
	"context"

	"github.com/hanshat/infinitunes/internal/models"
)

// Catalog defines the read operations the client needs from the external
// music catalog. Implemented by [SaavnService]; test doubles implement it
// for command and cache tests.
type Catalog interface {
	// Home fetches the raw home-page aggregate (trending, albums, playlists, charts).
	Home(ctx context.Context) (*models.HomePayload, error)

	// Song retrieves full song details, including the lowest-quality media URL.
	Song(ctx context.Context, songID string) (*models.Song, error)

	// Album retrieves an album with its complete song list.
	Album(ctx context.Context, albumID string) (*models.Album, error)

	// Search runs an autocomplete search and returns matching songs and albums.
	Search(ctx context.Context, query string) ([]models.CatalogItem, error)

	// Name returns the catalog service name (e.g. "JioSaavn")
	Name() string
}
