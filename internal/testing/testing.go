// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/hanshat/infinitunes/internal/models"
)

// MockCatalog is a test double for [services.Catalog]. Responses are set per
// field; call counters let tests assert fetch counts.
type MockCatalog struct {
	mu sync.Mutex

	HomePayload   *models.HomePayload
	HomeErr       error
	Songs         map[string]*models.Song
	Albums        map[string]*models.Album
	SearchResults []models.CatalogItem
	SearchErr     error

	HomeCalls   int
	SongCalls   int
	AlbumCalls  int
	SearchCalls int
}

func (m *MockCatalog) Home(ctx context.Context) (*models.HomePayload, error) {
	m.mu.Lock()
	m.HomeCalls++
	m.mu.Unlock()
	return m.HomePayload, m.HomeErr
}

func (m *MockCatalog) Song(ctx context.Context, songID string) (*models.Song, error) {
	m.mu.Lock()
	m.SongCalls++
	m.mu.Unlock()
	if song, ok := m.Songs[songID]; ok {
		return song, nil
	}
	return nil, errors.New("song not found")
}

func (m *MockCatalog) Album(ctx context.Context, albumID string) (*models.Album, error) {
	m.mu.Lock()
	m.AlbumCalls++
	m.mu.Unlock()
	if album, ok := m.Albums[albumID]; ok {
		return album, nil
	}
	return nil, errors.New("album not found")
}

func (m *MockCatalog) Search(ctx context.Context, query string) ([]models.CatalogItem, error) {
	m.mu.Lock()
	m.SearchCalls++
	m.mu.Unlock()
	return m.SearchResults, m.SearchErr
}

func (m *MockCatalog) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return dir
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}
