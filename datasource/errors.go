package datasource

import (
	"errors"
	"fmt"
)

// Error categories surfaced by the gateways. Callers match them with errors.Is.
var (
	ErrLookupFailed = errors.New("lookup failed")
	ErrFetchFailed  = errors.New("fetch failed")
)

// StatusError is returned when an upstream API answers with a non-success status
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned status %d", e.Status)
	}
	return fmt.Sprintf("API returned status %d: %s", e.Status, e.Body)
}
