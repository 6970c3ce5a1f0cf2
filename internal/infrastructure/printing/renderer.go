package printing

import (
	"context"
	"time"
)

// PDFRenderer turns rendered HTML into a PDF document. Implementations:
// ChromedpRenderer (headless Chrome) and WkhtmltopdfRenderer.
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	// Close releases the renderer's resources (browser context, temp dirs).
	Close() error
}

// RenderRequest describes one HTML-to-PDF conversion.
type RenderRequest struct {
	HTML        string
	PaperSize   PaperSize
	Orientation Orientation
	Margins     Margins // millimeters

	// Title lands in the PDF metadata, not on the page.
	Title string

	// Optional page chrome, repeated on every page.
	HeaderHTML string
	FooterHTML string

	// EnableLocalFileAccess lets the page load file:// assets.
	EnableLocalFileAccess bool

	// Timeout overrides the renderer's default per-document timeout.
	Timeout time.Duration
}

// RenderResult is the produced document plus render diagnostics.
type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

const (
	ErrCodeRenderTimeout    = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidHTML      = "INVALID_HTML"
	ErrCodeBinaryNotFound   = "BINARY_NOT_FOUND"
	ErrCodeInvalidPaperSize = "INVALID_PAPER_SIZE"
)

// RenderError classifies a rendering failure so callers can distinguish
// timeouts from bad input without string matching.
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error { return e.Cause }
