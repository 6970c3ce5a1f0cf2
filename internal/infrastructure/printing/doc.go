// Package printing provides infrastructure implementations for PDF
// generation of the workflow documents.
//
// This package contains:
// - PDFRenderer interface for rendering HTML to PDF
// - ChromedpRenderer implementation using the Chrome DevTools Protocol
// - WkhtmltopdfRenderer implementation using the wkhtmltopdf command-line tool
// - TemplateEngine for binding business data to the embedded HTML templates
// - DocumentRenderer producing purchase order and export PDFs
//
// Example usage:
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{
//	    NoSandbox: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer renderer.Close()
//
//	docs := NewDocumentRenderer(renderer, CompanyInfo{Name: "..."}, logger)
//	pdf, err := docs.RenderPurchaseOrder(ctx, req, hotel, employee)
package printing
