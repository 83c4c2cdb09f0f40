package config

import "time"

// ReporterConfig is the root configuration for an orders-reporter instance.
type ReporterConfig struct {
	Project   ProjectConfig   `yaml:"project"`
	Database  DBConfig        `yaml:"database"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ProjectConfig identifies the monitoring workspace metric points are
// written to.
type ProjectConfig struct {
	ID string `yaml:"id"`
}

// DBConfig holds the orders database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// SchedulerConfig holds report loop settings.
type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// MetricsConfig holds the health/metrics HTTP server settings.
type MetricsConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}
