package analysis

import (
	"errors"
	"net/http"
)

var (
	// ErrSchemaUnreadable indicates the uploaded file could not be parsed
	// as a spreadsheet.
	ErrSchemaUnreadable = errors.New("schema file unreadable")

	// ErrSessionNotFound indicates no analysis session exists for the
	// given ID.
	ErrSessionNotFound = errors.New("analysis session not found")

	// ErrNoFile indicates the upload request carried no file.
	ErrNoFile = errors.New("no file provided")
)

// MapHTTPStatus translates analysis errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSchemaUnreadable), errors.Is(err, ErrNoFile):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
