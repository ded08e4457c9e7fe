package importer

import (
	"errors"
	"net/http"

	"github.com/rasidhq/rasid/pkg/spreadsheet"
)

// Domain errors for catalogue import.
var (
	// ErrCatalogueIncomplete aborts the import: a required sheet or column
	// is absent and no snapshot is written.
	ErrCatalogueIncomplete = errors.New("catalogue incomplete")
	// ErrNoFile is returned when the upload carries no workbook.
	ErrNoFile = errors.New("no workbook file provided")
)

// MapHTTPStatus maps importer errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrCatalogueIncomplete) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, spreadsheet.ErrUnreadable) || errors.Is(err, ErrNoFile) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
