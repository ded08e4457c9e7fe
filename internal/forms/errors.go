package forms

import (
	"errors"
	"net/http"
)

var (
	// ErrUnknownKind indicates a form kind outside the supported set.
	ErrUnknownKind = errors.New("unknown form kind")

	// ErrBadKey indicates a key component that is empty or would break
	// the filename encoding.
	ErrBadKey = errors.New("invalid form key component")

	// ErrNoRecord indicates no submission exists for the requested kind
	// and key.
	ErrNoRecord = errors.New("no form record found")
)

// MapHTTPStatus translates form errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoRecord):
		return http.StatusNotFound
	case errors.Is(err, ErrUnknownKind), errors.Is(err, ErrBadKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
