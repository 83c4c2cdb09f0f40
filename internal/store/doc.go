// Package store implements the order count data source.
//
// The store:
//   - Computes backlog and processed counts in one aggregate query
//   - Coerces absent aggregates to zero instead of failing the cycle
//   - Runs over the shared connection pool (no per-tick connections)
//   - Never retries; a failed query aborts only the calling cycle
package store
