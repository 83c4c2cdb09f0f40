package publish

import "fmt"

// PublishError reports a failed point submission for one metric type.
type PublishError struct {
	MetricType string
	Err        error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish %s: %v", e.MetricType, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }
