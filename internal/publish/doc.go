// Package publish implements the Cloud Monitoring metric publisher.
//
// The publisher:
//   - Writes one gauge point per call to the time-series ingestion API
//   - Tags points with the deployment's project as a global resource
//   - Reports the same wall-clock time as interval start and end
//   - Never batches; each point is a complete, independent observation
package publish
