// Package database provides connection pool management for the orders
// PostgreSQL instance.
//
// The reporter holds a single process-scoped pool:
//   - constructed once at startup, pinged before use
//   - shared by every report cycle (never re-established per tick)
//   - closed only on process shutdown
package database
