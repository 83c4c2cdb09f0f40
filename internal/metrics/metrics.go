package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Cycles counts report cycles by outcome
	// (ok, partial, publish_error, fetch_error, skipped).
	Cycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reporter_cycles_total",
		Help: "Report cycles by outcome",
	}, []string{"status"})

	// Publishes counts individual point submissions.
	Publishes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reporter_publishes_total",
		Help: "Metric point submissions by metric type and outcome",
	}, []string{"metric_type", "status"})

	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "reporter_cycle_duration_seconds",
		Help: "Time spent in a single report cycle",
	})

	BacklogCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "reporter_order_backlog_count",
		Help: "Backlog count from the last successful query",
	})

	ProcessedCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "reporter_order_processed_count",
		Help: "Processed count from the last successful query",
	})
)
