package store

import "fmt"

// DataSourceError reports a failed read against the orders database.
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source: %s: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }
