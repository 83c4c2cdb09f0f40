// Package scheduler implements the report loop driver.
//
// The scheduler:
//   - Fires one fetch-and-publish cycle per interval (default 1 minute)
//   - Publishes both metric types concurrently and waits for both outcomes
//   - Aborts a cycle when the count query fails, without touching the publisher
//   - Skips a tick when the previous cycle is still in flight
package scheduler
