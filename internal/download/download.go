// Package download resolves quality-parameterized media URLs and saves the
// audio behind them to disk.
//
// The catalog API only hands out the lowest-quality media URL; every other
// tier is reachable by substituting the quality token in that URL. The
// resolver rewrites the URL, streams the file, and names it from the
// entity-decoded song title and release year.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hanshat/infinitunes/internal/models"
	"github.com/hanshat/infinitunes/internal/shared"
)

// ProgressUpdate carries per-file download progress information.
type ProgressUpdate struct {
	BytesWritten int64
	TotalBytes   int64
}

// ProgressFunc receives throttled progress updates while a file is downloading.
type ProgressFunc func(ProgressUpdate)

// FileDownloadResult describes a completed file download.
type FileDownloadResult struct {
	Path         string
	ContentType  string
	BytesWritten int64
	Duration     time.Duration
}

// ResolveURL rewrites a song's base media URL for the requested quality tier
// by substituting the lowest-quality token once.
func ResolveURL(mediaURL string, quality models.Quality) (string, error) {
	if mediaURL == "" {
		return "", shared.ErrNoMediaURL
	}
	if _, err := models.ParseQuality(string(quality)); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	return strings.Replace(mediaURL, models.BaseQualitySuffix, quality.Suffix(), 1), nil
}

// Filename builds the on-disk name for a song: the HTML-entity-decoded title
// followed by the release year, made filesystem-safe.
func Filename(song *models.Song) string {
	name := strings.TrimSpace(shared.DecodeEntities(song.Name))
	if name == "" {
		name = song.ItemID
	}
	if song.Year != "" {
		name = name + " " + song.Year
	}
	return MakeValid(name) + ".mp3"
}

// Resolver downloads songs at a requested quality tier.
type Resolver struct {
	httpClient *http.Client
	logger     *log.Logger
}

// NewResolver creates a Resolver. The client defaults to one with a 30s
// timeout and the logger to the shared default.
func NewResolver(client *http.Client, logger *log.Logger) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Resolver{httpClient: client, logger: logger}
}

// DownloadSong fetches a song at the requested quality into dir and returns
// the written file path. Failures are logged here; the caller decides
// whether to surface them further.
func (r *Resolver) DownloadSong(ctx context.Context, song *models.Song, quality models.Quality, dir string) (string, error) {
	result, err := r.DownloadSongWithProgress(ctx, song, quality, dir, nil)
	if err != nil {
		return "", err
	}
	return result.Path, nil
}

// DownloadSongWithProgress is [Resolver.DownloadSong] with throttled
// progress reporting.
func (r *Resolver) DownloadSongWithProgress(ctx context.Context, song *models.Song, quality models.Quality, dir string, progress ProgressFunc) (FileDownloadResult, error) {
	mediaURL, err := ResolveURL(song.MediaURL, quality)
	if err != nil {
		r.logger.Error("could not resolve media URL", "song", song.ItemID, "err", err)
		return FileDownloadResult{}, err
	}

	dstPath := filepath.Join(dir, Filename(song))
	result, err := r.downloadToFile(ctx, mediaURL, dstPath, progress)
	if err != nil {
		r.logger.Error("download failed", "song", song.ItemID, "quality", quality, "err", err)
		return FileDownloadResult{}, fmt.Errorf("%w: %v", shared.ErrDownloadFailed, err)
	}

	return result, nil
}

func (r *Resolver) downloadToFile(ctx context.Context, url, dstPath string, progress ProgressFunc) (FileDownloadResult, error) {
	started := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FileDownloadResult{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return FileDownloadResult{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return FileDownloadResult{}, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return FileDownloadResult{}, fmt.Errorf("create parent dirs: %w", err)
	}

	out, err := os.Create(dstPath)
	if err != nil {
		return FileDownloadResult{}, fmt.Errorf("create file %s: %w", dstPath, err)
	}
	defer out.Close()

	totalBytes := resp.ContentLength
	if totalBytes <= 0 {
		totalBytes = -1
	}

	bytesWritten, err := copyWithProgress(out, resp.Body, totalBytes, progress)
	if err != nil {
		return FileDownloadResult{}, fmt.Errorf("write file %s: %w", dstPath, err)
	}

	return FileDownloadResult{
		Path:         dstPath,
		ContentType:  resp.Header.Get("Content-Type"),
		BytesWritten: bytesWritten,
		Duration:     time.Since(started),
	}, nil
}

func copyWithProgress(dst io.Writer, src io.Reader, totalBytes int64, progress ProgressFunc) (int64, error) {
	buf := make([]byte, 32*1024)
	var bytesWritten int64
	var lastProgress time.Time

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			written, writeErr := dst.Write(buf[:n])
			if written > 0 {
				bytesWritten += int64(written)
			}
			if writeErr != nil {
				return bytesWritten, writeErr
			}
			if written != n {
				return bytesWritten, io.ErrShortWrite
			}

			if progress != nil {
				now := time.Now()
				if lastProgress.IsZero() || now.Sub(lastProgress) >= 700*time.Millisecond {
					progress(ProgressUpdate{BytesWritten: bytesWritten, TotalBytes: totalBytes})
					lastProgress = now
				}
			}
		}

		if readErr != nil {
			if readErr == io.EOF {
				if progress != nil {
					progress(ProgressUpdate{BytesWritten: bytesWritten, TotalBytes: totalBytes})
				}
				return bytesWritten, nil
			}
			return bytesWritten, readErr
		}
	}
}
