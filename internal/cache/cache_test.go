package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	store := NewStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { store.Close() })

	return store, mr
}

func TestStore(t *testing.T) {
	t.Run("round trips a response body", func(t *testing.T) {
		store, _ := newTestStore(t)
		ctx := context.Background()

		body := []byte(`[{"name":"Imagine","artist":"John Lennon","url":"u1","playcount":5,"youtube_id":"abc123"}]`)
		if err := store.Set(ctx, "replay:recommendations:limit=10", body, DefaultTTL); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := store.Get(ctx, "replay:recommendations:limit=10")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != string(body) {
			t.Errorf("Get() = %s, want %s", got, body)
		}
	})

	t.Run("miss returns nil without error", func(t *testing.T) {
		store, _ := newTestStore(t)

		got, err := store.Get(context.Background(), "replay:recommendations:limit=99")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != nil {
			t.Errorf("Get() = %s, want nil for a cold key", got)
		}
	})

	t.Run("entries expire after the freshness window", func(t *testing.T) {
		store, mr := newTestStore(t)
		ctx := context.Background()

		if err := store.Set(ctx, "replay:search:limit=10:query=imagine", []byte("[]"), DefaultTTL); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		mr.FastForward(29 * time.Minute)
		if got, err := store.Get(ctx, "replay:search:limit=10:query=imagine"); err != nil || got == nil {
			t.Fatalf("Get() inside window = (%s, %v), want cached body", got, err)
		}

		mr.FastForward(2 * time.Minute)
		if got, err := store.Get(ctx, "replay:search:limit=10:query=imagine"); err != nil || got != nil {
			t.Errorf("Get() after expiry = (%s, %v), want (nil, nil)", got, err)
		}
	})

	t.Run("surfaces store failures", func(t *testing.T) {
		store, mr := newTestStore(t)
		mr.SetError("redis connection failed")

		if _, err := store.Get(context.Background(), "replay:recommendations"); err == nil {
			t.Error("Get() expected error when the store is failing")
		}
		if err := store.Set(context.Background(), "replay:recommendations", []byte("[]"), DefaultTTL); err == nil {
			t.Error("Set() expected error when the store is failing")
		}
	})

	t.Run("ping reports reachability", func(t *testing.T) {
		store, mr := newTestStore(t)

		if err := store.Ping(context.Background()); err != nil {
			t.Errorf("Ping() error = %v", err)
		}

		mr.SetError("redis connection failed")
		if err := store.Ping(context.Background()); err == nil {
			t.Error("Ping() expected error when the store is failing")
		}
	})
}

func TestNewStore(t *testing.T) {
	t.Run("parses redis URLs", func(t *testing.T) {
		store, err := NewStore("redis://localhost:6379")
		if err != nil {
			t.Fatalf("NewStore() error = %v", err)
		}
		store.Close()
	})

	t.Run("rejects malformed URLs", func(t *testing.T) {
		if _, err := NewStore("not-a-url"); err == nil {
			t.Error("NewStore() expected error for malformed URL")
		}
	})
}

func TestKey(t *testing.T) {
	tc := []struct {
		name      string
		operation string
		params    map[string]string
		want      string
	}{
		{
			name:      "bare operation",
			operation: "recommendations",
			params:    nil,
			want:      "replay:recommendations",
		},
		{
			name:      "single parameter",
			operation: "recommendations",
			params:    map[string]string{"limit": "10"},
			want:      "replay:recommendations:limit=10",
		},
		{
			name:      "parameters sorted by name",
			operation: "search",
			params:    map[string]string{"query": "imagine", "limit": "10"},
			want:      "replay:search:limit=10:query=imagine",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Key(tt.operation, tt.params)
			if got != tt.want {
				t.Errorf("Key() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("equivalent maps share one key", func(t *testing.T) {
		a := Key("search", map[string]string{"limit": "10", "query": "imagine"})
		b := Key("search", map[string]string{"query": "imagine", "limit": "10"})
		if a != b {
			t.Errorf("Key() not deterministic: %s != %s", a, b)
		}
	})
}
