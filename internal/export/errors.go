// Package export turns a rendered CV into a paginated A4 PDF.
package export

import (
	"errors"
	"fmt"
)

// ErrExportInProgress is returned when an export is requested while another one is running.
var ErrExportInProgress = errors.New("an export is already in progress")

// Messages shown to the user when an export cannot run.
const (
	NoticeExportFailed = "Failed to export PDF. Please try again."
	NoticeExportBusy   = "An export is already in progress."
)

// CaptureError reports that the document region could not be located or rasterized.
type CaptureError struct {
	Selector string
	Message  string
	Cause    error
}

func (e *CaptureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("capture error: %s (%s): %v", e.Message, e.Selector, e.Cause)
	}
	return fmt.Sprintf("capture error: %s (%s)", e.Message, e.Selector)
}

func (e *CaptureError) Unwrap() error {
	return e.Cause
}

// ExportError reports any other failure while producing the PDF.
type ExportError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error at %s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("export error at %s: %s", e.Stage, e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
