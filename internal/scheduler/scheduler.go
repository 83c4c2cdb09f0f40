package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ordersight/orders-reporter/internal/metrics"
	"github.com/ordersight/orders-reporter/internal/publish"
	"github.com/ordersight/orders-reporter/internal/store"
)

// CountSource provides the per-cycle order counts.
type CountSource interface {
	FetchCounts(ctx context.Context) (store.Counts, error)
}

// MetricPublisher submits one gauge point per metric type.
type MetricPublisher interface {
	Publish(ctx context.Context, metricType string, value int64) error
}

// Config holds scheduler configuration.
type Config struct {
	Interval time.Duration // Report interval (default: 1m)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: time.Minute,
	}
}

// Scheduler drives one fetch-and-publish cycle per tick for the lifetime of
// the process.
type Scheduler struct {
	cfg       Config
	source    CountSource
	publisher MetricPublisher
	logger    *slog.Logger

	// inFlight serializes cycles: a tick that fires while a cycle is
	// still running is skipped rather than overlapped.
	inFlight atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Scheduler.
func New(cfg Config, source CountSource, publisher MetricPublisher, logger *slog.Logger) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cfg:       cfg,
		source:    source,
		publisher: publisher,
		logger:    logger,
	}
}

// Start begins the report loop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.run()

	s.logger.Info("report scheduler started",
		"interval", s.cfg.Interval,
	)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("report scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main report loop.
func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	// Report immediately on start.
	s.tick()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick runs one cycle unless the previous one is still in flight.
func (s *Scheduler) tick() {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Warn("previous report cycle still running, skipping tick")
		metrics.Cycles.WithLabelValues("skipped").Inc()
		return
	}
	defer s.inFlight.Store(false)

	s.runCycle()
}

// runCycle fetches a count snapshot and publishes both metric types.
func (s *Scheduler) runCycle() {
	start := time.Now()
	cycleID := uuid.NewString()

	counts, err := s.source.FetchCounts(s.ctx)
	if err != nil {
		s.logger.Error("report cycle aborted, count query failed",
			"cycle_id", cycleID,
			"err", err,
		)
		metrics.Cycles.WithLabelValues("fetch_error").Inc()
		return
	}

	metrics.BacklogCount.Set(float64(counts.Backlog))
	metrics.ProcessedCount.Set(float64(counts.Processed))

	// Both points go out concurrently; the cycle waits for both outcomes
	// and records them independently, so one metric's failure never
	// suppresses the other's submission.
	points := []struct {
		metricType string
		value      int64
	}{
		{publish.MetricBacklog, counts.Backlog},
		{publish.MetricProcessed, counts.Processed},
	}

	var wg sync.WaitGroup
	var published, failed atomic.Int64

	for _, pt := range points {
		wg.Add(1)
		go func(metricType string, value int64) {
			defer wg.Done()

			if err := s.publisher.Publish(s.ctx, metricType, value); err != nil {
				s.logger.Warn("failed to publish metric",
					"cycle_id", cycleID,
					"metric_type", metricType,
					"err", err,
				)
				metrics.Publishes.WithLabelValues(metricType, "error").Inc()
				failed.Add(1)
				return
			}

			metrics.Publishes.WithLabelValues(metricType, "ok").Inc()
			published.Add(1)
		}(pt.metricType, pt.value)
	}

	wg.Wait()

	status := "ok"
	switch {
	case published.Load() == 0 && failed.Load() > 0:
		status = "publish_error"
	case failed.Load() > 0:
		status = "partial"
	}
	metrics.Cycles.WithLabelValues(status).Inc()
	metrics.CycleDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("report cycle complete",
		"cycle_id", cycleID,
		"backlog", counts.Backlog,
		"processed", counts.Processed,
		"published", published.Load(),
		"failed", failed.Load(),
		"duration", time.Since(start),
	)
}
