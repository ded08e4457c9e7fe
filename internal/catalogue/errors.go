package catalogue

import (
	"errors"
	"net/http"
)

// Domain errors for catalogue operations.
var (
	ErrNotFound  = errors.New("catalogue entry not found")
	ErrNoControl = errors.New("control not found")
	ErrInvalidID = errors.New("invalid identifier")
)

// MapHTTPStatus maps catalogue domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoControl) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
