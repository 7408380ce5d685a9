package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/hanshat/infinitunes/internal/meta"
	"github.com/hanshat/infinitunes/internal/models"
	"github.com/hanshat/infinitunes/internal/shared"
)

var (
	_ list.Item = catalogItem{}
	_ list.Item = trackItem{}
)

// catalogItem wraps [models.CatalogItem] to implement [list.Item].
type catalogItem struct {
	item models.CatalogItem
}

func (i catalogItem) FilterValue() string { return shared.DecodeEntities(i.item.Name) }
func (i catalogItem) Title() string       { return shared.DecodeEntities(i.item.Name) }
func (i catalogItem) Description() string {
	desc := i.item.Type
	if i.item.Year != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.item.Year)
	}
	if artists := meta.ResolveArtists(i.item); artists != "" {
		desc = fmt.Sprintf("%s • %s", desc, artists)
	}
	return desc
}

// trackItem wraps [models.Song] to implement [list.Item].
type trackItem struct {
	song models.Song
}

func (i trackItem) FilterValue() string { return shared.DecodeEntities(i.song.Name) }
func (i trackItem) Title() string       { return shared.DecodeEntities(i.song.Name) }
func (i trackItem) Description() string {
	desc := meta.ResolveArtists(i.song.CatalogItem)
	if i.song.Duration > 0 {
		desc = fmt.Sprintf("%s • %s", desc, meta.FormatDuration(i.song.Duration))
	}
	return desc
}
