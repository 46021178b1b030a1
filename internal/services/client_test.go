package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/replay/internal/shared"
)

func TestClient(t *testing.T) {
	t.Run("Recommendations", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/recommendations" {
				t.Errorf("expected path /recommendations, got %s", r.URL.Path)
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{"name": "Imagine", "artist": "John Lennon", "url": "u1", "playcount": 5, "youtube_id": "abc123"},
				{"name": "Jealous Guy", "artist": "John Lennon", "url": "u2", "playcount": 1}
			]`))
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		recs, err := client.Recommendations(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(recs) != 2 {
			t.Fatalf("expected 2 recommendations, got %d", len(recs))
		}
		if recs[0].YouTubeID != "abc123" {
			t.Errorf("expected youtube_id abc123, got %s", recs[0].YouTubeID)
		}
		if recs[1].HasVideo() {
			t.Error("expected second recommendation without a video match")
		}
	})

	t.Run("Search", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/search" {
				t.Errorf("expected path /search, got %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("query"); got != "harvest moon" {
				t.Errorf("expected query to be escaped and forwarded, got %q", got)
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"name": "Harvest Moon", "artist": "Neil Young", "url": "u1", "playcount": 42, "youtube_id": "hm1"}]`))
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		recs, err := client.Search(context.Background(), "harvest moon")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(recs) != 1 {
			t.Fatalf("expected 1 result, got %d", len(recs))
		}
		if recs[0].Name != "Harvest Moon" {
			t.Errorf("expected name 'Harvest Moon', got %s", recs[0].Name)
		}
	})

	t.Run("Health", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/health" {
				t.Errorf("expected path /health, got %s", r.URL.Path)
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status": "ok", "service": "replay"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		status, err := client.Health(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if status.Status != "ok" {
			t.Errorf("expected status ok, got %s", status.Status)
		}
		if status.Service != "replay" {
			t.Errorf("expected service replay, got %s", status.Service)
		}
	})

	t.Run("Error Handling", func(t *testing.T) {
		t.Run("decodes detail envelope", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"detail": "scrobble provider unavailable"}`))
			}))
			defer server.Close()

			client := NewClient(server.URL, nil)
			_, err := client.Recommendations(context.Background())
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Fatalf("expected ErrAPIRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), "scrobble provider unavailable") {
				t.Errorf("expected error to carry detail message, got %v", err)
			}
		})

		t.Run("handles unreachable service", func(t *testing.T) {
			client := NewClient("http://127.0.0.1:1", nil)
			if _, err := client.Recommendations(context.Background()); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Fatalf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})
}
