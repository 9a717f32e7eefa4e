package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
)

// fakeLookup is an in-package [Lookup] double for fallback tests.
type fakeLookup struct {
	name       string
	streams    []AudioStream
	candidates []models.SongCandidate
	err        error
	pingErr    error
	calls      int
}

func (f *fakeLookup) Streams(ctx context.Context, trackID string) ([]AudioStream, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.streams, nil
}

func (f *fakeLookup) Search(ctx context.Context, query string, limit int) ([]models.SongCandidate, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

func (f *fakeLookup) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeLookup) Name() string                   { return f.name }

func TestResolver(t *testing.T) {
	t.Run("first provider wins", func(t *testing.T) {
		first := &fakeLookup{name: "first", streams: []AudioStream{{URL: "https://a.example.com/1"}}}
		second := &fakeLookup{name: "second", streams: []AudioStream{{URL: "https://b.example.com/1"}}}

		resolver := NewResolver([]Lookup{first, second}, 0, nil)
		resolution, err := resolver.Resolve(context.Background(), "abc123")
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}

		if resolution.URL != "https://a.example.com/1" {
			t.Errorf("expected first provider's URL, got %q", resolution.URL)
		}
		if resolution.Provider != "first" {
			t.Errorf("expected provider 'first', got %q", resolution.Provider)
		}
		if second.calls != 0 {
			t.Error("second provider should not have been called")
		}
	})

	t.Run("falls back past failing provider", func(t *testing.T) {
		first := &fakeLookup{name: "first", err: errors.New("connection refused")}
		second := &fakeLookup{name: "second", streams: []AudioStream{{URL: "https://b.example.com/1"}}}

		resolver := NewResolver([]Lookup{first, second}, 0, nil)
		resolution, err := resolver.Resolve(context.Background(), "abc123")
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}

		if resolution.Provider != "second" {
			t.Errorf("expected fallback to 'second', got %q", resolution.Provider)
		}
	})

	t.Run("falls back past empty stream list", func(t *testing.T) {
		first := &fakeLookup{name: "first"}
		second := &fakeLookup{name: "second", streams: []AudioStream{{URL: "https://b.example.com/1"}}}

		resolver := NewResolver([]Lookup{first, second}, 0, nil)
		resolution, err := resolver.Resolve(context.Background(), "abc123")
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}

		if resolution.Provider != "second" {
			t.Errorf("expected fallback to 'second', got %q", resolution.Provider)
		}
	})

	t.Run("falls back past a provider exceeding the attempt timeout", func(t *testing.T) {
		slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
			fmt.Fprint(w, `{"audioStreams":[{"url":"https://slow.example.com/1"}]}`)
		}))
		defer slow.Close()

		fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"audioStreams":[{"url":"https://fast.example.com/1"}]}`)
		}))
		defer fast.Close()

		providers := []Lookup{
			NewPipedClient(slow.URL, nil, nil),
			NewPipedClient(fast.URL, nil, nil),
		}

		resolver := NewResolver(providers, 50*time.Millisecond, nil)
		resolution, err := resolver.Resolve(context.Background(), "abc123")
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}

		if resolution.URL != "https://fast.example.com/1" {
			t.Errorf("expected the fast provider's URL, got %q", resolution.URL)
		}
		if resolution.Provider != fast.URL {
			t.Errorf("expected provider %q, got %q", fast.URL, resolution.Provider)
		}
	})

	t.Run("all providers fail", func(t *testing.T) {
		first := &fakeLookup{name: "first", err: errors.New("down")}
		second := &fakeLookup{name: "second", err: errors.New("also down")}

		resolver := NewResolver([]Lookup{first, second}, 0, nil)
		_, err := resolver.Resolve(context.Background(), "abc123")
		if !errors.Is(err, shared.ErrResolution) {
			t.Errorf("expected ErrResolution, got %v", err)
		}
	})

	t.Run("empty track id", func(t *testing.T) {
		resolver := NewResolver([]Lookup{&fakeLookup{name: "first"}}, 0, nil)
		_, err := resolver.Resolve(context.Background(), "")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("no providers configured", func(t *testing.T) {
		resolver := NewResolver(nil, 0, nil)
		_, err := resolver.Resolve(context.Background(), "abc123")
		if !errors.Is(err, shared.ErrResolution) {
			t.Errorf("expected ErrResolution, got %v", err)
		}
	})
}

func TestGateway(t *testing.T) {
	t.Run("first provider with results wins", func(t *testing.T) {
		first := &fakeLookup{name: "first", candidates: []models.SongCandidate{{Title: "Rain", TrackID: "abc123"}}}
		second := &fakeLookup{name: "second", candidates: []models.SongCandidate{{Title: "Other", TrackID: "def456"}}}

		gateway := NewGateway([]Lookup{first, second}, 0, 0, nil)
		candidates, err := gateway.Search(context.Background(), "rain")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if len(candidates) != 1 || candidates[0].TrackID != "abc123" {
			t.Errorf("expected first provider's results, got %v", candidates)
		}
		if second.calls != 0 {
			t.Error("second provider should not have been called")
		}
	})

	t.Run("falls back past failing provider", func(t *testing.T) {
		first := &fakeLookup{name: "first", err: errors.New("down")}
		second := &fakeLookup{name: "second", candidates: []models.SongCandidate{{Title: "Rain", TrackID: "abc123"}}}

		gateway := NewGateway([]Lookup{first, second}, 0, 0, nil)
		candidates, err := gateway.Search(context.Background(), "rain")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if len(candidates) != 1 {
			t.Errorf("expected fallback results, got %v", candidates)
		}
	})

	t.Run("all providers fail yields empty result", func(t *testing.T) {
		first := &fakeLookup{name: "first", err: errors.New("down")}
		second := &fakeLookup{name: "second", err: errors.New("also down")}

		gateway := NewGateway([]Lookup{first, second}, 0, 0, nil)
		candidates, err := gateway.Search(context.Background(), "rain")
		if err != nil {
			t.Fatalf("expected no error when all providers fail, got %v", err)
		}
		if candidates == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(candidates) != 0 {
			t.Errorf("expected no candidates, got %d", len(candidates))
		}
	})

	t.Run("empty query", func(t *testing.T) {
		gateway := NewGateway([]Lookup{&fakeLookup{name: "first"}}, 0, 0, nil)
		_, err := gateway.Search(context.Background(), "")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestCheckProviders(t *testing.T) {
	t.Run("reports mixed health", func(t *testing.T) {
		healthy := &fakeLookup{name: "healthy"}
		broken := &fakeLookup{name: "broken", pingErr: errors.New("unreachable")}

		statuses := CheckProviders(context.Background(), []Lookup{healthy, broken}, time.Second)

		if len(statuses) != 2 {
			t.Fatalf("expected 2 statuses, got %d", len(statuses))
		}

		if statuses[0].Provider != "healthy" || !statuses[0].Healthy {
			t.Errorf("expected first provider healthy, got %+v", statuses[0])
		}
		if statuses[1].Provider != "broken" || statuses[1].Healthy {
			t.Errorf("expected second provider unhealthy, got %+v", statuses[1])
		}
		if statuses[1].Error == "" {
			t.Error("expected error detail for unhealthy provider")
		}
	})

	t.Run("no providers", func(t *testing.T) {
		statuses := CheckProviders(context.Background(), nil, time.Second)
		if len(statuses) != 0 {
			t.Errorf("expected no statuses, got %d", len(statuses))
		}
	})
}
