package publish

import (
	"context"
	"log/slog"
	"time"

	monitoring "cloud.google.com/go/monitoring/apiv3/v2"
	"cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	gax "github.com/googleapis/gax-go/v2"
	metricpb "google.golang.org/genproto/googleapis/api/metric"
	monitoredrespb "google.golang.org/genproto/googleapis/api/monitoredres"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Metric types published by the reporter. Alert policies reference these
// strings verbatim, so they must not change between releases.
const (
	MetricBacklog   = "custom.googleapis.com/orders/backlog_count"
	MetricProcessed = "custom.googleapis.com/orders/processed_count"
)

// timeSeriesWriter is the subset of *monitoring.MetricClient the publisher
// uses.
type timeSeriesWriter interface {
	CreateTimeSeries(ctx context.Context, req *monitoringpb.CreateTimeSeriesRequest, opts ...gax.CallOption) error
}

var _ timeSeriesWriter = (*monitoring.MetricClient)(nil)

// Publisher writes gauge points to Cloud Monitoring.
type Publisher struct {
	client    timeSeriesWriter
	projectID string
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithClock overrides the wall clock used for point timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

// New creates a Publisher writing to the given monitoring project.
func New(client timeSeriesWriter, projectID string, opts ...Option) *Publisher {
	p := &Publisher{
		client:    client,
		projectID: projectID,
		logger:    slog.Default(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Publish submits one gauge point for metricType. Failures are returned as a
// *PublishError for the caller to log; nothing is retried or resent.
func (p *Publisher) Publish(ctx context.Context, metricType string, value int64) error {
	now := timestamppb.New(p.now())

	req := &monitoringpb.CreateTimeSeriesRequest{
		Name: "projects/" + p.projectID,
		TimeSeries: []*monitoringpb.TimeSeries{{
			Metric: &metricpb.Metric{
				Type: metricType,
			},
			Resource: &monitoredrespb.MonitoredResource{
				Type:   "global",
				Labels: map[string]string{"project_id": p.projectID},
			},
			Points: []*monitoringpb.Point{{
				// Gauge points carry a zero-width interval.
				Interval: &monitoringpb.TimeInterval{
					StartTime: now,
					EndTime:   now,
				},
				Value: &monitoringpb.TypedValue{
					Value: &monitoringpb.TypedValue_Int64Value{Int64Value: value},
				},
			}},
		}},
	}

	if err := p.client.CreateTimeSeries(ctx, req); err != nil {
		return &PublishError{MetricType: metricType, Err: err}
	}

	p.logger.Debug("published metric point",
		"metric_type", metricType,
		"value", value,
	)

	return nil
}
