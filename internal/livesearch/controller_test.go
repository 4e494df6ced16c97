package livesearch

import (
	"context"
	"sync"
	"testing"
	"time"

	"bindery/internal/naver"
)

type countingSearcher struct {
	mu      sync.Mutex
	queries []string
	block   chan struct{} // when non-nil, Search waits for a signal per call
}

func (s *countingSearcher) Search(ctx context.Context, query string, _ int) (*naver.Response, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	block := s.block
	s.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &naver.Response{Items: []naver.Item{{Title: query}}}, nil
}

func (s *countingSearcher) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

func newTestController(t *testing.T, searcher naver.Searcher, deliver func(Results)) *Controller {
	t.Helper()
	ctrl, err := New(Options{
		Searcher: searcher,
		Deliver:  deliver,
		Delay:    20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(ctrl.Close)
	return ctrl
}

func waitFor(t *testing.T, ch <-chan Results) Results {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
		return Results{}
	}
}

func TestDebounceCollapsesKeystrokes(t *testing.T) {
	searcher := &countingSearcher{}
	delivered := make(chan Results, 4)
	ctrl := newTestController(t, searcher, func(r Results) { delivered <- r })

	ctrl.Input("자")
	ctrl.Input("자료")
	ctrl.Input("자료구조")

	got := waitFor(t, delivered)
	if got.Query != "자료구조" {
		t.Errorf("delivered query = %q, want final keystroke only", got.Query)
	}
	if searcher.count() != 1 {
		t.Errorf("search called %d times, want 1", searcher.count())
	}
}

func TestIdenticalQuerySkipped(t *testing.T) {
	searcher := &countingSearcher{}
	delivered := make(chan Results, 4)
	ctrl := newTestController(t, searcher, func(r Results) { delivered <- r })

	ctrl.Input("자료구조")
	waitFor(t, delivered)

	ctrl.Input("자료구조")
	time.Sleep(80 * time.Millisecond)

	if searcher.count() != 1 {
		t.Errorf("identical query re-issued: %d calls", searcher.count())
	}
}

func TestEmptyInputClearsImmediately(t *testing.T) {
	searcher := &countingSearcher{}
	delivered := make(chan Results, 4)
	ctrl := newTestController(t, searcher, func(r Results) { delivered <- r })

	ctrl.Input("자료구조")
	ctrl.Input("")

	got := waitFor(t, delivered)
	if got.Query != "" || got.Items != nil {
		t.Errorf("expected an immediate clear, got %+v", got)
	}
	time.Sleep(60 * time.Millisecond)
	if searcher.count() != 0 {
		t.Errorf("pending search should have been cancelled, %d calls issued", searcher.count())
	}
}

// gatedSearcher blocks selected queries until their gate is closed.
type gatedSearcher struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	calls []string
}

func (s *gatedSearcher) Search(ctx context.Context, query string, _ int) (*naver.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, query)
	gate := s.gates[query]
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &naver.Response{Items: []naver.Item{{Title: query}}}, nil
}

func TestStaleResponseDropped(t *testing.T) {
	slowGate := make(chan struct{})
	searcher := &gatedSearcher{gates: map[string]chan struct{}{"느린검색": slowGate}}

	var mu sync.Mutex
	var order []string
	delivered := make(chan struct{}, 4)
	ctrl := newTestController(t, searcher, func(r Results) {
		mu.Lock()
		order = append(order, r.Query)
		mu.Unlock()
		delivered <- struct{}{}
	})

	ctrl.Input("느린검색")
	time.Sleep(60 * time.Millisecond) // slow search is now in flight, blocked

	ctrl.Input("빠른검색")
	select {
	case <-delivered: // fast search completes and is delivered first
	case <-time.After(2 * time.Second):
		t.Fatal("fast search never delivered")
	}

	close(slowGate) // slow response arrives late
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 1 || order[0] != "빠른검색" {
		t.Errorf("stale response must be dropped, deliveries = %v", order)
	}
}

func TestCloseStopsDeliveries(t *testing.T) {
	searcher := &countingSearcher{}
	delivered := make(chan Results, 4)
	ctrl := newTestController(t, searcher, func(r Results) { delivered <- r })

	ctrl.Input("자료구조")
	ctrl.Close()
	time.Sleep(60 * time.Millisecond)

	select {
	case r := <-delivered:
		t.Errorf("delivery after Close: %+v", r)
	default:
	}
}

func TestNewValidatesOptions(t *testing.T) {
	if _, err := New(Options{Deliver: func(Results) {}}); err == nil {
		t.Error("expected error for missing searcher")
	}
	if _, err := New(Options{Searcher: &countingSearcher{}}); err == nil {
		t.Error("expected error for missing delivery callback")
	}
}
