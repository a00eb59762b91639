package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/cv-builder/internal/customization"
	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/form"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/storage"
	"github.com/jonathan/cv-builder/internal/types"
)

// RequestError reports a malformed request body or parameter.
type RequestError struct {
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr     *RequestError
		sectionErr *form.UnknownSectionError
		valueErr   *form.SectionValueError
		fieldErr   *types.FieldError
		keyErr     *customization.UnknownKeyError
		photoErr   *editor.PhotoError
		presetErr  *customization.UnknownPresetError
		captureErr *export.CaptureError
		tmplErr    *rendering.TemplateError
		tooLarge   *http.MaxBytesError
		schemaErr  *schemas.ValidationError
		docErr     *schemas.DocumentError
	)

	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &reqErr), errors.As(err, &sectionErr), errors.As(err, &valueErr),
		errors.As(err, &fieldErr), errors.As(err, &keyErr), errors.As(err, &photoErr),
		errors.As(err, &schemaErr), errors.As(err, &docErr):
		return http.StatusBadRequest
	case errors.As(err, &presetErr), errors.Is(err, storage.ErrNoSavedCV):
		return http.StatusNotFound
	case errors.Is(err, export.ErrExportInProgress):
		return http.StatusConflict
	case errors.As(err, &captureErr):
		// A rendered document without a printable region is a template problem.
		if captureErr.Cause == nil {
			return http.StatusUnprocessableEntity
		}
		return http.StatusInternalServerError
	case errors.As(err, &tmplErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
