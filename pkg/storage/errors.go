package storage

import (
	"errors"
	"net/http"
)

// Storage errors returned by workspace operations.
var (
	ErrNotFound   = errors.New("file not found")
	ErrEmptyKey   = errors.New("key cannot be empty")
	ErrInvalidKey = errors.New("key contains invalid path segment")
	ErrKeyExists  = errors.New("key already exists")
)

// MapHTTPStatus translates storage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyKey), errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, ErrKeyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
