package feedback

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/astroseek/astroseek/internal/domain"
)

type mockRecorder struct {
	updated bool
	err     error
	calls   atomic.Int64
	gotURL  string
}

func (m *mockRecorder) RecordClick(_ context.Context, url string) (bool, error) {
	m.calls.Add(1)
	m.gotURL = url
	return m.updated, m.err
}

func TestRecordClick_Updated(t *testing.T) {
	rec := &mockRecorder{updated: true}
	svc := New(rec)

	out, err := svc.RecordClick(context.Background(), "https://example.com/page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != Updated {
		t.Errorf("expected %q, got %q", Updated, out)
	}
	if rec.gotURL != "https://example.com/page" {
		t.Errorf("unexpected url: %s", rec.gotURL)
	}
}

func TestRecordClick_NotFound(t *testing.T) {
	svc := New(&mockRecorder{updated: false})

	out, err := svc.RecordClick(context.Background(), "https://example.com/missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != NotFound {
		t.Errorf("expected %q, got %q", NotFound, out)
	}
}

func TestRecordClick_EmptyURL(t *testing.T) {
	svc := New(&mockRecorder{})

	_, err := svc.RecordClick(context.Background(), "")
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestRecordClick_StoreError(t *testing.T) {
	svc := New(&mockRecorder{err: errors.New("conn reset")})

	_, err := svc.RecordClick(context.Background(), "https://example.com")
	if err == nil {
		t.Fatal("expected error")
	}
}

// countingRecorder increments a shared counter the way the store-side
// HINCRBY does, so concurrent submissions must all land.
type countingRecorder struct {
	mu    sync.Mutex
	count int64
}

func (c *countingRecorder) RecordClick(_ context.Context, _ string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	return true, nil
}

func TestRecordClick_ConcurrentClicksAllLand(t *testing.T) {
	const n = 64

	rec := &countingRecorder{}
	svc := New(rec)

	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.RecordClick(context.Background(), "https://example.com"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if rec.count != n {
		t.Fatalf("expected %d clicks recorded, got %d", n, rec.count)
	}
}
