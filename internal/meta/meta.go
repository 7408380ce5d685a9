// Package meta normalizes catalog metadata for display: artist names and
// identifiers, artwork selection, and duration formatting.
package meta

import (
	"fmt"
	"strings"

	"github.com/hanshat/infinitunes/internal/models"
)

// PlaceholderImage is served when a catalog item carries no artwork.
const PlaceholderImage = "images/placeholder.jpg"

// ResolveArtists produces a deduplicated, human-readable artist line for a
// catalog item. The three artist fields are merged in fixed priority order
// (generic, then primary, then featured); duplicates by exact string equality
// keep their first-seen position.
func ResolveArtists(item models.CatalogItem) string {
	seen := make(map[string]struct{})
	var ordered []string

	for _, field := range []models.ArtistField{item.Artists, item.PrimaryArtists, item.FeaturedArtists} {
		for _, name := range field.Names() {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			ordered = append(ordered, name)
		}
	}

	return strings.Join(ordered, ", ")
}

// ResolveArtistIDs flattens the artist identifiers of a catalog item:
// the comma-joined primary-artist ID string first, then identifiers from the
// structured primary and featured lists. No deduplication is applied, and
// the generic artists field never contributes. Fields in joined-string form
// carry no identifiers, so their contribution is empty.
func ResolveArtistIDs(item models.CatalogItem) []string {
	var ids []string

	if item.PrimaryArtistIDs != "" {
		ids = append(ids, strings.Split(item.PrimaryArtistIDs, ", ")...)
	}
	ids = append(ids, item.PrimaryArtists.IDs()...)
	ids = append(ids, item.FeaturedArtists.IDs()...)

	return ids
}

// SelectImage picks the artwork URL for a quality tier: small, medium, or
// large map onto the three ascending-resolution variants, anything else
// defaults to the highest resolution. Items without artwork get the
// placeholder asset. The three-entry invariant on the variant list is
// assumed (see [models.Image]); violating it is undefined behavior.
func SelectImage(img models.Image, quality models.ImageQuality) string {
	if img.Empty() {
		return PlaceholderImage
	}

	switch quality {
	case models.ImageSmall:
		return img.Variants[0].Link
	case models.ImageMedium:
		return img.Variants[1].Link
	default:
		return img.Variants[2].Link
	}
}

// FormatDuration renders a duration in seconds as "m:ss". Minutes are not
// zero-padded, seconds always are: 225 becomes "3:45" and 5 becomes "0:05".
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
