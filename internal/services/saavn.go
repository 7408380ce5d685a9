// JioSaavn API implementation of [Catalog]
//
// The API is a single endpoint dispatching on the __call query parameter.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hanshat/infinitunes/internal/models"
	"github.com/hanshat/infinitunes/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://www.jiosaavn.com/api.php"
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	callLaunchData   = "webapi.getLaunchData"
	callSongDetails  = "song.getDetails"
	callAlbumDetails = "content.getAlbumDetails"
	callAutocomplete = "autocomplete.get"
)

// SaavnService implements [Catalog] against the JioSaavn web API. Requests
// are rate limited client-side; the API bans aggressive callers.
type SaavnService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSaavnService creates a catalog client. baseURL defaults to the public
// endpoint and rps bounds outgoing request rate (defaults to 5/s).
func NewSaavnService(baseURL string, client *http.Client, rps int) *SaavnService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if rps <= 0 {
		rps = 5
	}

	return &SaavnService{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

func (s *SaavnService) Name() string {
	return "JioSaavn"
}

// doRequest performs a rate-limited GET against the catalog API and decodes
// the JSON response into result.
func (s *SaavnService) doRequest(ctx context.Context, call string, params url.Values, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	query := url.Values{}
	query.Set("__call", call)
	query.Set("api_version", "4")
	query.Set("_format", "json")
	query.Set("_marker", "0")
	query.Set("ctx", "web6dot0")
	for key, values := range params {
		for _, v := range values {
			query.Add(key, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned status %d", shared.ErrAPIRequest, call, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Call performs an arbitrary API call and returns the raw JSON response.
// Intended for exploration; the typed accessors cover the supported calls.
func (s *SaavnService) Call(ctx context.Context, call string, params map[string]string) (json.RawMessage, error) {
	values := url.Values{}
	for key, v := range params {
		values.Set(key, v)
	}

	var raw json.RawMessage
	if err := s.doRequest(ctx, call, values, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Home fetches the raw home-page aggregate. The payload is returned exactly
// as the API shaped it; reshaping happens in the cache accessor.
func (s *SaavnService) Home(ctx context.Context) (*models.HomePayload, error) {
	var payload models.HomePayload
	if err := s.doRequest(ctx, callLaunchData, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Song retrieves a single song by ID.
func (s *SaavnService) Song(ctx context.Context, songID string) (*models.Song, error) {
	params := url.Values{}
	params.Set("pids", songID)

	var response struct {
		Songs []models.Song `json:"songs"`
	}
	if err := s.doRequest(ctx, callSongDetails, params, &response); err != nil {
		return nil, err
	}

	if len(response.Songs) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, songID)
	}

	return &response.Songs[0], nil
}

// Album retrieves an album with its complete song list.
func (s *SaavnService) Album(ctx context.Context, albumID string) (*models.Album, error) {
	params := url.Values{}
	params.Set("albumid", albumID)

	var album models.Album
	if err := s.doRequest(ctx, callAlbumDetails, params, &album); err != nil {
		return nil, err
	}

	if album.ItemID == "" {
		return nil, fmt.Errorf("%w: %s", shared.ErrAlbumNotFound, albumID)
	}

	return &album, nil
}

// Search runs an autocomplete search and returns matching songs followed by
// matching albums.
func (s *SaavnService) Search(ctx context.Context, query string) ([]models.CatalogItem, error) {
	params := url.Values{}
	params.Set("query", query)

	var response struct {
		Songs struct {
			Data []models.CatalogItem `json:"data"`
		} `json:"songs"`
		Albums struct {
			Data []models.CatalogItem `json:"data"`
		} `json:"albums"`
	}
	if err := s.doRequest(ctx, callAutocomplete, params, &response); err != nil {
		return nil, err
	}

	results := make([]models.CatalogItem, 0, len(response.Songs.Data)+len(response.Albums.Data))
	results = append(results, response.Songs.Data...)
	results = append(results, response.Albums.Data...)

	return results, nil
}

var _ Catalog = (*SaavnService)(nil)
