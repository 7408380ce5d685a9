package tasks

import (
	"fmt"

	"github.com/hanshat/infinitunes/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchSong Phase = iota
	FetchAlbum
	DownloadTracks
	RecordLibrary
	ExportAlbum
)

func (p Phase) String() string {
	switch p {
	case FetchSong:
		return "fetch_song"
	case FetchAlbum:
		return "fetch_album"
	case DownloadTracks:
		return "download_tracks"
	case RecordLibrary:
		return "record_library"
	case ExportAlbum:
		return "export_album"
	default:
		return ""
	}
}

func fetchSongUpdate(step, total int, songID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSong,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching song details (%s)...", songID),
	}
}

func fetchAlbumUpdate(step, total int, albumID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchAlbum,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching album details (%s)...", albumID),
	}
}

func foundAlbumUpdate(step, total int, album *models.Album) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchAlbum,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Found album: %s (%d tracks)", album.Name, len(album.Songs)),
		Data:    album,
	}
}

func downloadTrackUpdate(step, total int, song *models.Song) ProgressUpdate {
	if song == nil {
		return ProgressUpdate{
			Phase:   DownloadTracks,
			Step:    step,
			Total:   total,
			Message: "Downloading tracks...",
		}
	}
	return ProgressUpdate{
		Phase:   DownloadTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, song.Name),
	}
}

func trackCompletedUpdate(step, total int, name, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s → %s", step, total, name, path),
	}
}

func trackFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func recordLibraryUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RecordLibrary,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Recording download: %s", title),
	}
}

func exportingAlbumUpdate(step, total int, name, format string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportAlbum,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Exporting %s as %s...", name, format),
	}
}
