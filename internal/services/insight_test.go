package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
)

func testSongs() []models.Song {
	return []models.Song{
		{
			ID: "s1", Title: "Oceans", Artist: "Hillsong",
			Ratings: []models.Rating{{UserID: "a", Score: 5}, {UserID: "b", Score: 4}},
		},
		{ID: "s2", Title: "New Song", Artist: "Someone", Ratings: []models.Rating{}},
	}
}

func TestSetlistInsight(t *testing.T) {
	t.Run("empty catalog returns advisory text", func(t *testing.T) {
		svc := NewOpenAIInsight(InsightConfig{Model: "gpt-4o-mini", APIKey: "k"}, shared.NewLogger(io.Discard))
		text, err := svc.SetlistInsight(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(text, "Add some songs") {
			t.Errorf("unexpected advisory text: %q", text)
		}
	})

	t.Run("missing model returns advisory text", func(t *testing.T) {
		svc := NewOpenAIInsight(InsightConfig{}, shared.NewLogger(io.Discard))
		text, err := svc.SetlistInsight(context.Background(), testSongs())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(text, "not configured") {
			t.Errorf("unexpected advisory text: %q", text)
		}
	})

	t.Run("prompt carries vote summary", func(t *testing.T) {
		var gotBody string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			fmt.Fprint(w, `{
				"choices": [{"message": {"role": "assistant", "content": "Open with Oceans."}}]
			}`)
		}))
		defer srv.Close()

		svc := NewOpenAIInsight(InsightConfig{Endpoint: srv.URL, Model: "test-model", APIKey: "k"},
			shared.NewLogger(io.Discard))

		text, err := svc.SetlistInsight(context.Background(), testSongs())
		if err != nil {
			t.Fatalf("insight failed: %v", err)
		}
		if text != "Open with Oceans." {
			t.Errorf("unexpected insight: %q", text)
		}

		if !strings.Contains(gotBody, "Oceans (Hillsong)") {
			t.Errorf("prompt missing song line: %s", gotBody)
		}
		if !strings.Contains(gotBody, "4.5") {
			t.Errorf("prompt missing average score: %s", gotBody)
		}
		if !strings.Contains(gotBody, "no votes") {
			t.Errorf("prompt missing unvoted marker: %s", gotBody)
		}
	})

	t.Run("transport error is returned", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		svc := NewOpenAIInsight(InsightConfig{Endpoint: srv.URL, Model: "test-model", APIKey: "k"},
			shared.NewLogger(io.Discard))

		if _, err := svc.SetlistInsight(context.Background(), testSongs()); err == nil {
			t.Error("expected error from failing endpoint")
		}
	})
}
