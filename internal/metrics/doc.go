// Package metrics provides Prometheus metrics for monitoring the reporter
// itself.
//
// Key metrics:
//   - Report cycle outcomes and durations
//   - Per-metric-type publish outcomes
//   - Last observed backlog and processed counts
package metrics
