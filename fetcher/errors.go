package fetcher

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers connection failures, timeouts and non-2xx statuses.
	ErrTransport = errors.New("transport error")
	// ErrDecode is matched by every *DecodeError.
	ErrDecode = errors.New("decode error")
	// ErrUnexpected wraps panics recovered while handling a detail page.
	ErrUnexpected = errors.New("unexpected error")
)

// StatusError reports a response whose status code is outside 2xx
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

func (e *StatusError) Unwrap() error {
	return ErrTransport
}

// DecodeError reports an API page whose body is not the expected JSON shape.
// Body holds the raw response so it can be logged.
type DecodeError struct {
	Page int
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode page %d: %v", e.Page, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}
