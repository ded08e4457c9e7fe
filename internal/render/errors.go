package render

import (
	"errors"
	"net/http"

	"github.com/rasidhq/rasid/internal/forms"
)

var (
	// ErrRenderFailed indicates the PDF engine could not produce output.
	ErrRenderFailed = errors.New("pdf rendering failed")

	// ErrInvalidPDF indicates the rendered output failed validation and
	// was discarded.
	ErrInvalidPDF = errors.New("rendered pdf failed validation")
)

// MapHTTPStatus translates render errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, forms.ErrUnknownKind):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
