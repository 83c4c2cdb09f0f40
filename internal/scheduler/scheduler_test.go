package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ordersight/orders-reporter/internal/publish"
	"github.com/ordersight/orders-reporter/internal/store"
)

// fakeSource returns fixed counts, or fails.
type fakeSource struct {
	counts  store.Counts
	err     error
	fetches atomic.Int32

	// block, when set, holds FetchCounts until released.
	block chan struct{}
}

func (f *fakeSource) FetchCounts(ctx context.Context) (store.Counts, error) {
	f.fetches.Add(1)
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return store.Counts{}, f.err
	}
	return f.counts, nil
}

// publishCall records one Publish invocation.
type publishCall struct {
	metricType string
	value      int64
}

// fakePublisher records calls and can fail per metric type.
type fakePublisher struct {
	mu      sync.Mutex
	calls   []publishCall
	failFor map[string]error
}

func (f *fakePublisher) Publish(ctx context.Context, metricType string, value int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, publishCall{metricType: metricType, value: value})
	if err, ok := f.failFor[metricType]; ok {
		return err
	}
	return nil
}

func (f *fakePublisher) recorded() []publishCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]publishCall(nil), f.calls...)
}

func (f *fakePublisher) valueFor(metricType string) (int64, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var value int64
	count := 0
	for _, c := range f.calls {
		if c.metricType == metricType {
			value = c.value
			count++
		}
	}
	return value, count
}

func TestScheduler_PublishesBothMetrics(t *testing.T) {
	source := &fakeSource{counts: store.Counts{Backlog: 2, Processed: 1}}
	pub := &fakePublisher{}

	s := New(Config{Interval: time.Hour}, source, pub, nil)
	s.ctx = context.Background()

	s.runCycle()

	if got := len(pub.recorded()); got != 2 {
		t.Fatalf("publish calls = %d, want 2", got)
	}

	if v, n := pub.valueFor(publish.MetricBacklog); n != 1 || v != 2 {
		t.Errorf("backlog metric: %d calls with value %d, want 1 call with value 2", n, v)
	}
	if v, n := pub.valueFor(publish.MetricProcessed); n != 1 || v != 1 {
		t.Errorf("processed metric: %d calls with value %d, want 1 call with value 1", n, v)
	}
}

func TestScheduler_FetchErrorSkipsPublish(t *testing.T) {
	source := &fakeSource{err: &store.DataSourceError{Op: "query order counts", Err: errors.New("connection refused")}}
	pub := &fakePublisher{}

	s := New(Config{Interval: time.Hour}, source, pub, nil)
	s.ctx = context.Background()

	s.runCycle()

	if got := len(pub.recorded()); got != 0 {
		t.Errorf("publish calls = %d, want 0", got)
	}
}

func TestScheduler_PartialPublishFailure(t *testing.T) {
	source := &fakeSource{counts: store.Counts{Backlog: 5, Processed: 3}}
	pub := &fakePublisher{
		failFor: map[string]error{
			publish.MetricBacklog: &publish.PublishError{
				MetricType: publish.MetricBacklog,
				Err:        errors.New("unavailable"),
			},
		},
	}

	s := New(Config{Interval: time.Hour}, source, pub, nil)
	s.ctx = context.Background()

	// Must not panic or abort the sibling publish.
	s.runCycle()

	if got := len(pub.recorded()); got != 2 {
		t.Fatalf("publish calls = %d, want 2", got)
	}
	if v, n := pub.valueFor(publish.MetricProcessed); n != 1 || v != 3 {
		t.Errorf("processed metric: %d calls with value %d, want 1 call with value 3", n, v)
	}
}

func TestScheduler_RepeatedCyclesRepublish(t *testing.T) {
	source := &fakeSource{counts: store.Counts{Backlog: 4, Processed: 9}}
	pub := &fakePublisher{}

	s := New(Config{Interval: time.Hour}, source, pub, nil)
	s.ctx = context.Background()

	s.runCycle()
	s.runCycle()
	s.runCycle()

	// Identical counts still produce a fresh pair of points every cycle.
	if got := len(pub.recorded()); got != 6 {
		t.Errorf("publish calls = %d, want 6", got)
	}
	if _, n := pub.valueFor(publish.MetricBacklog); n != 3 {
		t.Errorf("backlog metric calls = %d, want 3", n)
	}
}

func TestScheduler_SkipsOverlappingTick(t *testing.T) {
	source := &fakeSource{
		counts: store.Counts{Backlog: 1, Processed: 1},
		block:  make(chan struct{}),
	}
	pub := &fakePublisher{}

	s := New(Config{Interval: time.Hour}, source, pub, nil)
	s.ctx = context.Background()

	done := make(chan struct{})
	go func() {
		s.tick()
		close(done)
	}()

	// Wait until the first cycle is inside FetchCounts.
	for source.fetches.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	// A tick arriving mid-cycle must return without a second fetch.
	s.tick()
	if got := source.fetches.Load(); got != 1 {
		t.Errorf("fetches = %d, want 1 (overlapping tick should be skipped)", got)
	}

	close(source.block)
	<-done

	if got := len(pub.recorded()); got != 2 {
		t.Errorf("publish calls = %d, want 2", got)
	}
}

func TestScheduler_StartStop(t *testing.T) {
	source := &fakeSource{counts: store.Counts{Backlog: 2, Processed: 1}}
	pub := &fakePublisher{}

	s := New(Config{Interval: 50 * time.Millisecond}, source, pub, nil)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Wait for the immediate cycle plus at least one tick.
	time.Sleep(120 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if got := source.fetches.Load(); got < 2 {
		t.Errorf("fetches = %d, want >= 2", got)
	}
	if got := len(pub.recorded()); got < 4 {
		t.Errorf("publish calls = %d, want >= 4", got)
	}
}
