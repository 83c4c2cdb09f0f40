package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultDBHost         = "127.0.0.1"
	DefaultDBPort         = 5432
	DefaultDBSSLMode      = "prefer"
	DefaultMaxConns       = 4
	DefaultMinConns       = 1
	DefaultReportInterval = time.Minute
	DefaultMetricsPort    = 9090
	DefaultMetricsPath    = "/metrics"
)

func (c *ReporterConfig) applyDefaults() {
	// Database defaults
	if c.Database.Host == "" {
		c.Database.Host = DefaultDBHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Scheduler defaults
	if c.Scheduler.Interval == 0 {
		c.Scheduler.Interval = DefaultReportInterval
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}
