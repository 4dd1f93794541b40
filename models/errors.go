package models

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrResourceUnavailable = errors.New("resource unavailable")
	ErrProvider            = errors.New("completion provider error")
)

// ContentFilteredError is returned when the completion provider rejects a
// request under its content management policy. Detail carries the provider's
// own explanation and is surfaced to the client verbatim.
type ContentFilteredError struct {
	Detail string
}

func (e *ContentFilteredError) Error() string {
	return "content filtered: " + e.Detail
}
