package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Model defines the base interface for all persistent models in the library database.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// CatalogItem carries the fields shared by every catalog entry. Songs and
// albums differ in the rest of their shape but both expose the three
// artist-bearing fields, artwork, and a release year, so metadata
// normalization treats them uniformly through this embedded struct.
type CatalogItem struct {
	ItemID           string      `json:"id"`
	Name             string      `json:"name"`
	Type             string      `json:"type"`
	Year             string      `json:"year"`
	PermaURL         string      `json:"perma_url"`
	Image            Image       `json:"image"`
	Artists          ArtistField `json:"artists"`
	PrimaryArtists   ArtistField `json:"primary_artists"`
	PrimaryArtistIDs string      `json:"primary_artists_id"`
	FeaturedArtists  ArtistField `json:"featured_artists"`
}

// Song is a playable catalog entry. MediaURL points at the lowest-quality
// audio variant; higher tiers are derived by quality-suffix substitution.
type Song struct {
	CatalogItem
	Album    string `json:"album"`
	Language string `json:"language"`
	Duration int    `json:"duration,string"`
	MediaURL string `json:"media_url"`
}

// Album is a catalog entry grouping songs.
type Album struct {
	CatalogItem
	Songs []Song `json:"songs"`
}

// TrendingLists holds the two trending sub-lists of the raw home payload.
type TrendingLists struct {
	Albums []CatalogItem `json:"albums"`
	Songs  []CatalogItem `json:"songs"`
}

// HomePayload is the home-page aggregate exactly as the catalog API returns
// it. The cache stores this raw shape so every read reshapes the same data.
type HomePayload struct {
	Trending  TrendingLists `json:"trending"`
	Albums    []CatalogItem `json:"albums"`
	Playlists []CatalogItem `json:"playlists"`
	Charts    []CatalogItem `json:"charts"`
}

// Home is the reshaped home aggregate served to callers: the two trending
// sub-lists merged (albums first, then songs), everything else passed through.
type Home struct {
	Trending  []CatalogItem `json:"trending"`
	Albums    []CatalogItem `json:"albums"`
	Playlists []CatalogItem `json:"playlists"`
	Charts    []CatalogItem `json:"charts"`
}

// Reshape converts the raw payload into the public [Home] aggregate.
func (p *HomePayload) Reshape() *Home {
	trending := make([]CatalogItem, 0, len(p.Trending.Albums)+len(p.Trending.Songs))
	trending = append(trending, p.Trending.Albums...)
	trending = append(trending, p.Trending.Songs...)

	return &Home{
		Trending:  trending,
		Albums:    p.Albums,
		Playlists: p.Playlists,
		Charts:    p.Charts,
	}
}

// Download records a completed audio download in the library database.
type Download struct {
	id        string
	songID    string
	title     string
	artists   string
	quality   Quality
	path      string
	createdAt time.Time
	updatedAt time.Time
}

// NewDownload creates a Download entity for a saved file. The repository
// assigns the ID and timestamps on insert.
func NewDownload(songID, title, artists string, quality Quality, path string) *Download {
	return &Download{
		songID:  songID,
		title:   title,
		artists: artists,
		quality: quality,
		path:    path,
	}
}

func (d *Download) ID() string           { return d.id }
func (d *Download) SongID() string       { return d.songID }
func (d *Download) Title() string        { return d.title }
func (d *Download) Artists() string      { return d.artists }
func (d *Download) Quality() Quality     { return d.quality }
func (d *Download) Path() string         { return d.path }
func (d *Download) CreatedAt() time.Time { return d.createdAt }
func (d *Download) UpdatedAt() time.Time { return d.updatedAt }

func (d *Download) SetID(id string)          { d.id = id }
func (d *Download) SetCreatedAt(t time.Time) { d.createdAt = t }
func (d *Download) SetUpdatedAt(t time.Time) { d.updatedAt = t }
func (d *Download) SetQuality(q Quality)     { d.quality = q }
func (d *Download) SetPath(path string)      { d.path = path }
func (d *Download) SetTimestamps(c, u time.Time) {
	d.createdAt = c
	d.updatedAt = u
}

// MarshalJSON exposes the download record for display output.
func (d *Download) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string    `json:"id"`
		SongID    string    `json:"song_id"`
		Title     string    `json:"title"`
		Artists   string    `json:"artists"`
		Quality   Quality   `json:"quality"`
		Path      string    `json:"path"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}{d.id, d.songID, d.title, d.artists, d.quality, d.path, d.createdAt, d.updatedAt})
}

// Validate checks required fields before persistence.
func (d *Download) Validate() error {
	if d.id == "" {
		return fmt.Errorf("download: missing id")
	}
	if d.songID == "" {
		return fmt.Errorf("download: missing song id")
	}
	if d.title == "" {
		return fmt.Errorf("download: missing title")
	}
	if d.path == "" {
		return fmt.Errorf("download: missing file path")
	}
	if _, err := ParseQuality(string(d.quality)); err != nil {
		return fmt.Errorf("download: %w", err)
	}
	return nil
}

var _ Model = (*Download)(nil)
