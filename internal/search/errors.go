package search

import "fmt"

// SearchError is the top-level failure of a whole search call. It is only
// produced when ContinueOnError is off and a validation or server failure
// aborts the search; the wrapped error carries the cause.
type SearchError struct {
	Server string
	Err    error
}

func (e *SearchError) Error() string {
	if e.Server != "" {
		return fmt.Sprintf("search failed at server %q: %v", e.Server, e.Err)
	}
	return fmt.Sprintf("search failed: %v", e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}
