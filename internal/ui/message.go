package ui

import (
	"github.com/hanshat/infinitunes/internal/models"
	"github.com/hanshat/infinitunes/internal/tasks"
)

// homeFetchedMsg carries the reshaped home feed (or the fetch error).
type homeFetchedMsg struct {
	home *models.Home
	err  error
}

// tracksFetchedMsg carries the track listing for a selected item.
type tracksFetchedMsg struct {
	album *models.Album
	err   error
}

// progressUpdateMsg carries one progress event from a running download.
type progressUpdateMsg tasks.ProgressUpdate

// downloadCompleteMsg signals that a download run has finished.
type downloadCompleteMsg struct {
	result *tasks.AlbumRunResult
	err    error
}
