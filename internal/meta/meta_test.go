package meta

import (
	"reflect"
	"testing"

	"github.com/hanshat/infinitunes/internal/models"
)

func TestResolveArtists(t *testing.T) {
	t.Run("merges and deduplicates in priority order", func(t *testing.T) {
		item := models.CatalogItem{
			Artists:        models.ListedArtists(models.ArtistRef{Name: "A"}, models.ArtistRef{Name: "B"}),
			PrimaryArtists: models.JoinedArtists("B, C"),
		}

		if got := ResolveArtists(item); got != "A, B, C" {
			t.Errorf("expected %q, got %q", "A, B, C", got)
		}
	})

	t.Run("featured artists come last", func(t *testing.T) {
		item := models.CatalogItem{
			PrimaryArtists:  models.JoinedArtists("A"),
			FeaturedArtists: models.ListedArtists(models.ArtistRef{Name: "F"}),
		}

		if got := ResolveArtists(item); got != "A, F" {
			t.Errorf("expected %q, got %q", "A, F", got)
		}
	})

	t.Run("empty item yields empty string", func(t *testing.T) {
		if got := ResolveArtists(models.CatalogItem{}); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

func TestResolveArtistIDs(t *testing.T) {
	t.Run("concatenates without deduplication", func(t *testing.T) {
		item := models.CatalogItem{
			PrimaryArtistIDs: "1, 2",
			PrimaryArtists:   models.ListedArtists(models.ArtistRef{Name: "A", URL: "/artist/a"}),
			FeaturedArtists:  models.ListedArtists(models.ArtistRef{Name: "F", URL: "/artist/a"}),
		}

		want := []string{"1", "2", "/artist/a", "/artist/a"}
		if got := ResolveArtistIDs(item); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("joined-form fields contribute no IDs", func(t *testing.T) {
		item := models.CatalogItem{
			PrimaryArtists:  models.JoinedArtists("A, B"),
			FeaturedArtists: models.JoinedArtists("F"),
		}

		if got := ResolveArtistIDs(item); len(got) != 0 {
			t.Errorf("expected no IDs, got %v", got)
		}
	})

	t.Run("generic artists are ignored", func(t *testing.T) {
		item := models.CatalogItem{
			Artists: models.ListedArtists(models.ArtistRef{Name: "A", URL: "/artist/a"}),
		}

		if got := ResolveArtistIDs(item); len(got) != 0 {
			t.Errorf("generic artist field should not contribute IDs, got %v", got)
		}
	})
}

func TestSelectImage(t *testing.T) {
	artwork := models.Image{Variants: []models.ImageVariant{
		{Quality: "50x50", Link: "s"},
		{Quality: "150x150", Link: "m"},
		{Quality: "500x500", Link: "l"},
	}}

	cases := []struct {
		name    string
		img     models.Image
		quality models.ImageQuality
		want    string
	}{
		{"small picks the first variant", artwork, models.ImageSmall, "s"},
		{"medium picks the second variant", artwork, models.ImageMedium, "m"},
		{"large picks the third variant", artwork, models.ImageLarge, "l"},
		{"unspecified defaults to highest", artwork, "", "l"},
		{"unknown tier defaults to highest", artwork, "huge", "l"},
		{"missing artwork returns placeholder", models.Image{}, models.ImageSmall, PlaceholderImage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SelectImage(tc.img, tc.quality); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{59, "0:59"},
		{60, "1:00"},
		{225, "3:45"},
		{3661, "61:01"},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%d): expected %q, got %q", tc.seconds, tc.want, got)
		}
	}
}
