package models

import (
	"encoding/json"
	"testing"
)

func TestArtistField(t *testing.T) {
	t.Run("decodes joined string form", func(t *testing.T) {
		var f ArtistField
		if err := json.Unmarshal([]byte(`"A, B, C"`), &f); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if f.Kind != ArtistFieldJoined {
			t.Errorf("expected joined kind, got %d", f.Kind)
		}
		names := f.Names()
		if len(names) != 3 || names[0] != "A" || names[2] != "C" {
			t.Errorf("unexpected names: %v", names)
		}
		if ids := f.IDs(); ids != nil {
			t.Errorf("joined form should carry no IDs, got %v", ids)
		}
	})

	t.Run("decodes structured list form", func(t *testing.T) {
		var f ArtistField
		raw := `[{"name":"A","url":"/artist/a"},{"name":"B","url":"/artist/b"}]`
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if f.Kind != ArtistFieldList {
			t.Errorf("expected list kind, got %d", f.Kind)
		}
		if names := f.Names(); len(names) != 2 || names[1] != "B" {
			t.Errorf("unexpected names: %v", names)
		}
		if ids := f.IDs(); len(ids) != 2 || ids[0] != "/artist/a" {
			t.Errorf("unexpected IDs: %v", ids)
		}
	})

	t.Run("empty string yields no names", func(t *testing.T) {
		f := JoinedArtists("")
		if names := f.Names(); len(names) != 0 {
			t.Errorf("expected no names, got %v", names)
		}
	})

	t.Run("null yields the none variant", func(t *testing.T) {
		var f ArtistField
		if err := json.Unmarshal([]byte(`null`), &f); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if f.Kind != ArtistFieldNone {
			t.Errorf("expected none kind, got %d", f.Kind)
		}
	})

	t.Run("rejects unexpected shapes", func(t *testing.T) {
		var f ArtistField
		if err := json.Unmarshal([]byte(`42`), &f); err == nil {
			t.Error("expected error for numeric artist field")
		}
	})

	t.Run("marshal restores the wire shape", func(t *testing.T) {
		joined, err := json.Marshal(JoinedArtists("A, B"))
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(joined) != `"A, B"` {
			t.Errorf("unexpected joined encoding: %s", joined)
		}

		listed, err := json.Marshal(ListedArtists(ArtistRef{Name: "A", URL: "/artist/a"}))
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(listed) != `[{"name":"A","url":"/artist/a"}]` {
			t.Errorf("unexpected list encoding: %s", listed)
		}
	})
}

func TestImage(t *testing.T) {
	t.Run("decodes the false sentinel", func(t *testing.T) {
		var img Image
		if err := json.Unmarshal([]byte(`false`), &img); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if !img.Empty() {
			t.Error("expected empty image")
		}
	})

	t.Run("decodes the variant list", func(t *testing.T) {
		var img Image
		raw := `[{"quality":"50x50","link":"s"},{"quality":"150x150","link":"m"},{"quality":"500x500","link":"l"}]`
		if err := json.Unmarshal([]byte(raw), &img); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if len(img.Variants) != 3 || img.Variants[2].Link != "l" {
			t.Errorf("unexpected variants: %+v", img.Variants)
		}
	})

	t.Run("marshal restores the sentinel", func(t *testing.T) {
		data, err := json.Marshal(Image{})
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(data) != "false" {
			t.Errorf("expected false sentinel, got %s", data)
		}
	})
}

func TestHomeReshape(t *testing.T) {
	payload := &HomePayload{
		Trending: TrendingLists{
			Albums: []CatalogItem{{ItemID: "al1"}, {ItemID: "al2"}},
			Songs:  []CatalogItem{{ItemID: "s1"}},
		},
		Albums:    []CatalogItem{{ItemID: "al3"}},
		Playlists: []CatalogItem{{ItemID: "pl1"}},
		Charts:    []CatalogItem{{ItemID: "ch1"}},
	}

	home := payload.Reshape()

	if len(home.Trending) != 3 {
		t.Fatalf("expected 3 trending items, got %d", len(home.Trending))
	}
	// trending albums come first, then trending songs
	if home.Trending[0].ItemID != "al1" || home.Trending[2].ItemID != "s1" {
		t.Errorf("unexpected trending order: %+v", home.Trending)
	}
	if len(home.Albums) != 1 || home.Albums[0].ItemID != "al3" {
		t.Errorf("albums should pass through unchanged")
	}
	if len(home.Playlists) != 1 || len(home.Charts) != 1 {
		t.Errorf("playlists and charts should pass through unchanged")
	}
}

func TestQuality(t *testing.T) {
	t.Run("maps tiers to URL suffixes", func(t *testing.T) {
		cases := map[Quality]string{
			QualityLow:      "_12",
			QualityMedium:   "_48",
			QualityHigh:     "_96",
			QualityBest:     "_160",
			QualityLossless: "_320",
		}
		for q, want := range cases {
			if got := q.Suffix(); got != want {
				t.Errorf("%s: expected %s, got %s", q, want, got)
			}
		}
	})

	t.Run("rejects unknown tiers", func(t *testing.T) {
		if _, err := ParseQuality("ultra"); err == nil {
			t.Error("expected error for unknown quality")
		}
	})
}

func TestDownloadValidate(t *testing.T) {
	d := NewDownload("song1", "Title", "A, B", QualityHigh, "/tmp/title.mp3")
	if err := d.Validate(); err == nil {
		t.Error("expected validation error before ID assignment")
	}

	d.SetID("abc")
	if err := d.Validate(); err != nil {
		t.Errorf("expected valid download, got: %v", err)
	}

	d.SetQuality(Quality("ultra"))
	if err := d.Validate(); err == nil {
		t.Error("expected validation error for bad quality")
	}
}
