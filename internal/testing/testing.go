// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/services"
)

// MockMetadata is a test double for [services.MetadataService]
type MockMetadata struct {
	Meta    *services.Metadata
	Err     error
	Lookups int
}

func (m *MockMetadata) Lookup(ctx context.Context, sourceURL string) (*services.Metadata, error) {
	m.Lookups++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Meta, nil
}

// MockInsight is a test double for [services.InsightService]
type MockInsight struct {
	Text string
	Err  error
}

func (m *MockInsight) SetlistInsight(ctx context.Context, songs []models.Song) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}
