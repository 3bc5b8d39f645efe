package fetch

import "fmt"

// Error reports a failed source fetch: transport errors, timeouts and
// non-2xx responses all end up here.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("fetch '%s': %v", e.URL, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string { return fmt.Sprintf("unexpected response status '%s'", e.Status) }
