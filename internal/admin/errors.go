package admin

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when a read or delete comes back with an
// unexpected HTTP status. It carries the status code only.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status code: %d", e.Status)
}

func (e *StatusError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsNotFound reports whether err represents a 404 from the gateway.
// Resolvers use this to translate a missing resource into a nil result
// rather than propagating an error.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.IsNotFound()
	}
	return false
}

// RequestError is returned when a write (POST/PATCH) comes back with an
// unexpected HTTP status. The response body and attempted payload are
// preserved verbatim for diagnosis.
type RequestError struct {
	Status   int
	Expected int
	Path     string
	Body     string
	Payload  interface{}
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("unexpected HTTP code %d, expected %d on url %s, error: %s, data: %v",
		e.Status, e.Expected, e.Path, e.Body, e.Payload)
}
