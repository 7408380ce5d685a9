package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ArtistFieldKind discriminates the two wire shapes the catalog API uses for
// artist fields.
type ArtistFieldKind int

const (
	// ArtistFieldNone marks an absent field (null or never set).
	ArtistFieldNone ArtistFieldKind = iota
	// ArtistFieldJoined marks the comma-and-space joined name string form.
	ArtistFieldJoined
	// ArtistFieldList marks the structured list form of {name, url} entries.
	ArtistFieldList
)

// ArtistRef is one entry of the structured artist list form. The URL doubles
// as the artist's catalog identifier.
type ArtistRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ArtistField is a tagged union over the two shapes the API emits for the
// same artist fields: either a single joined string ("A, B, C") or a
// structured list. Callers dispatch on Kind rather than probing types.
type ArtistField struct {
	Kind   ArtistFieldKind
	Joined string
	Refs   []ArtistRef
}

// JoinedArtists builds the string-form variant.
func JoinedArtists(s string) ArtistField {
	return ArtistField{Kind: ArtistFieldJoined, Joined: s}
}

// ListedArtists builds the structured-list variant.
func ListedArtists(refs ...ArtistRef) ArtistField {
	return ArtistField{Kind: ArtistFieldList, Refs: refs}
}

// Names normalizes either variant into a list of plain artist names. The
// joined form splits on ", "; an empty string yields no names.
func (f ArtistField) Names() []string {
	switch f.Kind {
	case ArtistFieldJoined:
		if f.Joined == "" {
			return nil
		}
		return strings.Split(f.Joined, ", ")
	case ArtistFieldList:
		names := make([]string, 0, len(f.Refs))
		for _, ref := range f.Refs {
			names = append(names, ref.Name)
		}
		return names
	default:
		return nil
	}
}

// IDs returns the artist identifiers carried by the structured form. The
// joined form has no identifiers to give, so it contributes nothing.
func (f ArtistField) IDs() []string {
	if f.Kind != ArtistFieldList {
		return nil
	}
	ids := make([]string, 0, len(f.Refs))
	for _, ref := range f.Refs {
		ids = append(ids, ref.URL)
	}
	return ids
}

// UnmarshalJSON decodes either wire shape into the tagged union.
func (f *ArtistField) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = ArtistField{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var joined string
		if err := json.Unmarshal(trimmed, &joined); err != nil {
			return fmt.Errorf("artist field: %w", err)
		}
		*f = ArtistField{Kind: ArtistFieldJoined, Joined: joined}
	case '[':
		var refs []ArtistRef
		if err := json.Unmarshal(trimmed, &refs); err != nil {
			return fmt.Errorf("artist field: %w", err)
		}
		*f = ArtistField{Kind: ArtistFieldList, Refs: refs}
	default:
		return fmt.Errorf("artist field: unexpected JSON shape starting with %q", trimmed[0])
	}

	return nil
}

// MarshalJSON re-encodes the union in its original wire shape.
func (f ArtistField) MarshalJSON() ([]byte, error) {
	switch f.Kind {
	case ArtistFieldJoined:
		return json.Marshal(f.Joined)
	case ArtistFieldList:
		return json.Marshal(f.Refs)
	default:
		return []byte("null"), nil
	}
}

// ImageVariant is a single artwork resolution entry.
type ImageVariant struct {
	Quality string `json:"quality"`
	Link    string `json:"link"`
}

// Image is the artwork list attached to catalog items: exactly three
// variants ordered low to high resolution, or the literal false the API
// sends when an item has no artwork. The three-entry invariant is assumed,
// not checked; selection indexes into the list positionally.
type Image struct {
	Variants []ImageVariant
}

// Empty reports whether the item carries no artwork.
func (img Image) Empty() bool { return len(img.Variants) == 0 }

// UnmarshalJSON accepts either the variant list or the boolean sentinel.
func (img *Image) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("false")) || bytes.Equal(trimmed, []byte("null")) {
		img.Variants = nil
		return nil
	}
	if err := json.Unmarshal(trimmed, &img.Variants); err != nil {
		return fmt.Errorf("image: %w", err)
	}
	return nil
}

// MarshalJSON restores the sentinel for artwork-less items.
func (img Image) MarshalJSON() ([]byte, error) {
	if img.Empty() {
		return []byte("false"), nil
	}
	return json.Marshal(img.Variants)
}
