package services

import (
	"context"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
)

// Metadata is the title/author pair an oEmbed lookup yields.
type Metadata struct {
	Title  string `json:"title"`
	Author string `json:"author_name"`
}

// MetadataService resolves a source URL into prefill metadata.
type MetadataService interface {
	// Lookup returns metadata for the URL, or (nil, nil) when the URL is
	// not recognized. Results only prefill form fields, so failures are
	// soft: callers treat nil the same as "type it yourself".
	Lookup(ctx context.Context, sourceURL string) (*Metadata, error)
}

// InsightService produces advisory free-text commentary on the catalog.
type InsightService interface {
	// SetlistInsight suggests a setlist order from the songs and their
	// votes. The text is never parsed; it has no effect on core state.
	SetlistInsight(ctx context.Context, songs []models.Song) (string, error)
}
