package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
	"golang.org/x/time/rate"
)

// OEmbedService looks up song metadata through an oEmbed endpoint
// (noembed by default). Lookups are rate limited so a user pasting links
// in quick succession cannot hammer the proxy.
type OEmbedService struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewOEmbedService creates a metadata service against the given endpoint.
// A zero or negative requestsPerSecond disables throttling.
func NewOEmbedService(endpoint string, client *http.Client, requestsPerSecond float64) *OEmbedService {
	if endpoint == "" {
		endpoint = "https://noembed.com/embed"
	}
	if client == nil {
		client = http.DefaultClient
	}

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &OEmbedService{
		endpoint:   endpoint,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Lookup fetches {title, author} for a YouTube URL. URLs that are not
// recognizable YouTube links return (nil, nil) without a network call.
func (s *OEmbedService) Lookup(ctx context.Context, sourceURL string) (*Metadata, error) {
	if models.YoutubeID(sourceURL) == "" {
		return nil, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("metadata lookup cancelled: %w", err)
	}

	reqURL := fmt.Sprintf("%s?url=%s", s.endpoint, url.QueryEscape(sourceURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: oEmbed returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("%w: malformed oEmbed response", shared.ErrAPIRequest)
	}
	if meta.Title == "" {
		return nil, nil
	}
	return &meta, nil
}
