// Piped API [Lookup] implementation
//
// Talks to a single Piped-compatible instance. Instances expose
// /streams/{id} for stream resolution and /search for free-text queries.

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
	"golang.org/x/time/rate"
)

// Some instances reject requests without a browser user agent.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// PipedClient implements [Lookup] against one Piped-compatible instance.
type PipedClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewPipedClient creates a client for the instance at baseURL.
//
// The http client and limiter may be shared across instances; both default
// to permissive values when nil.
func NewPipedClient(baseURL string, client *http.Client, limiter *rate.Limiter) *PipedClient {
	if client == nil {
		client = http.DefaultClient
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	return &PipedClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		limiter:    limiter,
	}
}

// Name returns the instance base URL.
func (p *PipedClient) Name() string {
	return p.baseURL
}

func (p *PipedClient) doRequest(ctx context.Context, endpoint string, result any) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrProvider, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: status %d", shared.ErrProvider, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", shared.ErrProvider, err)
		}
	}

	return nil
}

// Streams returns the candidate audio streams for a track id.
//
// Calls GET /streams/{id} on the instance.
func (p *PipedClient) Streams(ctx context.Context, trackID string) ([]AudioStream, error) {
	var streamsResp struct {
		AudioStreams []AudioStream `json:"audioStreams"`
	}

	endpoint := fmt.Sprintf("/streams/%s", url.PathEscape(trackID))
	if err := p.doRequest(ctx, endpoint, &streamsResp); err != nil {
		return nil, err
	}

	return streamsResp.AudioStreams, nil
}

// pipedSearchItem is one entry in a Piped search response.
type pipedSearchItem struct {
	Title        string `json:"title"`
	UploaderName string `json:"uploaderName"`
	Thumbnail    string `json:"thumbnail"`
	URL          string `json:"url"`
	Duration     int    `json:"duration"`
}

// Search returns up to limit candidate tracks for a free-text query.
//
// Calls GET /search?q={query}&filter=music_videos on the instance and
// normalizes the entries: missing uploader becomes "Unknown Artist", an
// unknown duration becomes a placeholder display value, and the thumbnail
// URL passes through unmodified.
func (p *PipedClient) Search(ctx context.Context, query string, limit int) ([]models.SongCandidate, error) {
	var searchResp struct {
		Items []pipedSearchItem `json:"items"`

		// Older instances nest results under "content" instead.
		Content []pipedSearchItem `json:"content"`
	}

	endpoint := fmt.Sprintf("/search?q=%s&filter=music_videos", url.QueryEscape(query))
	if err := p.doRequest(ctx, endpoint, &searchResp); err != nil {
		return nil, err
	}

	items := searchResp.Items
	if len(items) == 0 {
		items = searchResp.Content
	}

	candidates := []models.SongCandidate{}
	for _, item := range items {
		if limit > 0 && len(candidates) >= limit {
			break
		}

		trackID := parseTrackID(item.URL)
		if trackID == "" {
			continue
		}

		candidate := models.SongCandidate{
			Title:    item.Title,
			Artist:   item.UploaderName,
			Cover:    item.Thumbnail,
			TrackID:  trackID,
			Duration: shared.FormatDuration(item.Duration),
		}
		if candidate.Title == "" {
			candidate.Title = models.UnknownTitle
		}
		if candidate.Artist == "" {
			candidate.Artist = models.UnknownArtist
		}
		if item.Duration < 0 {
			candidate.Duration = "3:00"
		}

		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

// Ping checks instance reachability via its health endpoint.
func (p *PipedClient) Ping(ctx context.Context) error {
	return p.doRequest(ctx, "/healthcheck", nil)
}

// parseTrackID extracts the video id from a watch URL ("/watch?v=<id>").
// Bare ids pass through unchanged.
func parseTrackID(watchURL string) string {
	if idx := strings.Index(watchURL, "v="); idx >= 0 {
		id := watchURL[idx+2:]
		if amp := strings.IndexByte(id, '&'); amp >= 0 {
			id = id[:amp]
		}
		return id
	}
	if strings.ContainsAny(watchURL, "/?") {
		return ""
	}
	return watchURL
}
