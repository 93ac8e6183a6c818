package client

import (
	"errors"
	"fmt"
	"net/http"
)

// The client surfaces a closed set of failures: every error returned by a
// fetch wraps ErrInvalidURL, ErrUnknown, or one of the typed errors below.
var (
	ErrInvalidURL = errors.New("invalid request url")
	ErrUnknown    = errors.New("unknown client error")
)

// NetworkError wraps a transport-level failure such as DNS resolution,
// connection reset, timeout, or cancellation.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Cause) }

func (e *NetworkError) Unwrap() error { return e.Cause }

// DecodingError wraps a response body that did not match the expected shape.
type DecodingError struct {
	Cause error
}

func (e *DecodingError) Error() string { return fmt.Sprintf("decoding error: %v", e.Cause) }

func (e *DecodingError) Unwrap() error { return e.Cause }

// ServerError is a non-2xx response with the status code attached.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err is a 404 server response, however deeply
// wrapped.
func IsNotFound(err error) bool {
	var serverErr *ServerError
	return errors.As(err, &serverErr) && serverErr.StatusCode == http.StatusNotFound
}
