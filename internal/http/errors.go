package http

import "fmt"

// StatusError is returned when the server answers with a status other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
}

// TransportError is returned when a request cannot be completed: connection
// failures, timeouts, cancellation, or a body that breaks off mid-read.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
