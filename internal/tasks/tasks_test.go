package tasks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/hanshat/infinitunes/internal/download"
	"github.com/hanshat/infinitunes/internal/models"
	"github.com/hanshat/infinitunes/internal/shared"
	th "github.com/hanshat/infinitunes/internal/testing"
)

// mockRecorder captures downloads recorded to the library.
type mockRecorder struct {
	mu      sync.Mutex
	created []*models.Download
}

func (m *mockRecorder) Create(d *models.Download) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, d)
	return nil
}

func (m *mockRecorder) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.created)
}

// newMediaServer serves fake audio bytes. Paths containing "bad" return 404.
func newMediaServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "bad") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "audio/mp4")
		w.Write([]byte("audio-bytes"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testSong(id, name, mediaURL string) *models.Song {
	return &models.Song{
		CatalogItem: models.CatalogItem{
			ItemID:         id,
			Name:           name,
			Year:           "2013",
			PrimaryArtists: models.JoinedArtists("Arijit Singh"),
		},
		Album:    "Aashiqui 2",
		Duration: 262,
		MediaURL: mediaURL,
	}
}

func drain(progress chan ProgressUpdate) []ProgressUpdate {
	close(progress)
	var updates []ProgressUpdate
	for u := range progress {
		updates = append(updates, u)
	}
	return updates
}

func TestDownloadSongTask(t *testing.T) {
	t.Run("downloads and records", func(t *testing.T) {
		srv := newMediaServer(t)
		dir := t.TempDir()

		catalog := &th.MockCatalog{
			Songs: map[string]*models.Song{
				"s1": testSong("s1", "Tum Hi Ho", srv.URL+"/tum_12.mp4"),
			},
		}
		recorder := &mockRecorder{}
		engine := NewMediaEngine(catalog, download.NewResolver(nil, nil), recorder, dir)

		progress := make(chan ProgressUpdate, 64)
		result, err := engine.DownloadSong(context.Background(), progress, "s1", models.QualityHigh)
		if err != nil {
			t.Fatalf("DownloadSong failed: %v", err)
		}

		if !result.Success {
			t.Error("expected a successful result")
		}
		if result.Path != filepath.Join(dir, "Tum Hi Ho 2013.mp3") {
			t.Errorf("unexpected path %q", result.Path)
		}
		th.AssertFileExists(t, result.Path)

		if recorder.count() != 1 {
			t.Errorf("expected 1 library record, got %d", recorder.count())
		}

		updates := drain(progress)
		if len(updates) == 0 {
			t.Error("expected progress updates")
		}
		if updates[0].Phase != FetchSong {
			t.Errorf("expected first update to be fetch_song, got %s", updates[0].Phase)
		}
	})

	t.Run("song not found", func(t *testing.T) {
		catalog := &th.MockCatalog{Songs: map[string]*models.Song{}}
		engine := NewMediaEngine(catalog, download.NewResolver(nil, nil), nil, t.TempDir())

		if _, err := engine.DownloadSong(context.Background(), nil, "missing", models.QualityHigh); err == nil {
			t.Error("expected error for unknown song")
		}
	})

	t.Run("download failure returns result and error", func(t *testing.T) {
		srv := newMediaServer(t)
		catalog := &th.MockCatalog{
			Songs: map[string]*models.Song{
				"s1": testSong("s1", "Broken", srv.URL+"/bad_12.mp4"),
			},
		}
		recorder := &mockRecorder{}
		engine := NewMediaEngine(catalog, download.NewResolver(nil, nil), recorder, t.TempDir())

		result, err := engine.DownloadSong(context.Background(), nil, "s1", models.QualityHigh)
		if err == nil {
			t.Fatal("expected error")
		}
		if result == nil || result.Success {
			t.Errorf("expected a failed result, got %+v", result)
		}
		if recorder.count() != 0 {
			t.Errorf("failed download should not be recorded, got %d records", recorder.count())
		}
	})
}

func TestDownloadAlbumTask(t *testing.T) {
	newAlbum := func(srv *httptest.Server) *models.Album {
		return &models.Album{
			CatalogItem: models.CatalogItem{ItemID: "al1", Name: "Aashiqui 2", Year: "2013"},
			Songs: []models.Song{
				*testSong("s1", "Tum Hi Ho", srv.URL+"/tum_12.mp4"),
				*testSong("s2", "Sunn Raha Hai", srv.URL+"/sunn_12.mp4"),
			},
		}
	}

	t.Run("downloads all tracks", func(t *testing.T) {
		srv := newMediaServer(t)
		dir := t.TempDir()

		catalog := &th.MockCatalog{Albums: map[string]*models.Album{"al1": newAlbum(srv)}}
		recorder := &mockRecorder{}
		engine := NewMediaEngine(catalog, download.NewResolver(nil, nil), recorder, dir)

		progress := make(chan ProgressUpdate, 64)
		result, err := engine.DownloadAlbum(context.Background(), progress, "al1", AlbumDownloadOpts{
			OutputDir: dir,
			RateLimit: 100,
		})
		if err != nil {
			t.Fatalf("DownloadAlbum failed: %v", err)
		}

		if result.SuccessCount != 2 || result.FailedCount != 0 {
			t.Errorf("expected 2 successes, got %d/%d", result.SuccessCount, result.FailedCount)
		}
		if recorder.count() != 2 {
			t.Errorf("expected 2 library records, got %d", recorder.count())
		}

		th.AssertFileExists(t, filepath.Join(dir, "Tum Hi Ho 2013.mp3"))
		th.AssertFileExists(t, filepath.Join(dir, "Sunn Raha Hai 2013.mp3"))
		th.AssertFileExists(t, result.ManifestPath)

		manifest := th.MustReadFile(t, result.ManifestPath)
		if !strings.Contains(manifest, `"succeeded": 2`) {
			t.Errorf("manifest missing success count: %s", manifest)
		}
	})

	t.Run("partial failure", func(t *testing.T) {
		srv := newMediaServer(t)
		dir := t.TempDir()

		album := newAlbum(srv)
		album.Songs[1].MediaURL = srv.URL + "/bad_12.mp4"
		catalog := &th.MockCatalog{Albums: map[string]*models.Album{"al1": album}}
		engine := NewMediaEngine(catalog, download.NewResolver(nil, nil), nil, dir)

		result, err := engine.DownloadAlbum(context.Background(), nil, "al1", AlbumDownloadOpts{OutputDir: dir, RateLimit: 100})
		if err != nil {
			t.Fatalf("partial failure should not fail the run: %v", err)
		}
		if result.SuccessCount != 1 || result.FailedCount != 1 {
			t.Errorf("expected 1 success and 1 failure, got %d/%d", result.SuccessCount, result.FailedCount)
		}
	})

	t.Run("all tracks fail", func(t *testing.T) {
		srv := newMediaServer(t)
		dir := t.TempDir()

		album := newAlbum(srv)
		album.Songs[0].MediaURL = srv.URL + "/bad1_12.mp4"
		album.Songs[1].MediaURL = srv.URL + "/bad2_12.mp4"
		catalog := &th.MockCatalog{Albums: map[string]*models.Album{"al1": album}}
		engine := NewMediaEngine(catalog, download.NewResolver(nil, nil), nil, dir)

		_, err := engine.DownloadAlbum(context.Background(), nil, "al1", AlbumDownloadOpts{OutputDir: dir, RateLimit: 100})
		if !errors.Is(err, shared.ErrDownloadFailed) {
			t.Errorf("expected ErrDownloadFailed, got %v", err)
		}
	})

	t.Run("album not found", func(t *testing.T) {
		catalog := &th.MockCatalog{Albums: map[string]*models.Album{}}
		engine := NewMediaEngine(catalog, download.NewResolver(nil, nil), nil, t.TempDir())

		if _, err := engine.DownloadAlbum(context.Background(), nil, "missing", AlbumDownloadOpts{}); err == nil {
			t.Error("expected error for unknown album")
		}
	})
}

func TestExportAlbumTask(t *testing.T) {
	album := &models.Album{
		CatalogItem: models.CatalogItem{ItemID: "al1", Name: "Aashiqui 2", Year: "2013"},
		Songs: []models.Song{
			*testSong("s1", "Tum Hi Ho", ""),
		},
	}
	catalog := &th.MockCatalog{Albums: map[string]*models.Album{"al1": album}}
	engine := NewMediaEngine(catalog, download.NewResolver(nil, nil), nil, "")

	t.Run("csv", func(t *testing.T) {
		dir := t.TempDir()
		result, err := engine.ExportAlbum(context.Background(), nil, "al1", "csv", dir)
		if err != nil {
			t.Fatalf("ExportAlbum failed: %v", err)
		}
		if len(result.Files) != 2 {
			t.Fatalf("expected 2 files, got %v", result.Files)
		}
		for _, f := range result.Files {
			th.AssertFileExists(t, f)
		}
	})

	t.Run("txt", func(t *testing.T) {
		dir := t.TempDir()
		result, err := engine.ExportAlbum(context.Background(), nil, "al1", "txt", dir)
		if err != nil {
			t.Fatalf("ExportAlbum failed: %v", err)
		}
		content := th.MustReadFile(t, result.Files[0])
		if !strings.Contains(content, "Album: Aashiqui 2") {
			t.Errorf("text export missing album name: %s", content)
		}
	})

	t.Run("json default", func(t *testing.T) {
		dir := t.TempDir()
		result, err := engine.ExportAlbum(context.Background(), nil, "al1", "", dir)
		if err != nil {
			t.Fatalf("ExportAlbum failed: %v", err)
		}
		content := th.MustReadFile(t, result.Files[0])
		if !strings.Contains(content, `"al1"`) {
			t.Errorf("JSON export missing album ID: %s", content)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := engine.ExportAlbum(context.Background(), nil, "al1", "yaml", t.TempDir()); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}
