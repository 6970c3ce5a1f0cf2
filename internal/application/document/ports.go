package document

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hrs/backend/internal/domain/identity"
	"github.com/hrs/backend/internal/domain/reference"
	"github.com/hrs/backend/internal/domain/request"
)

// Renderer produces the printable documents of the workflow
type Renderer interface {
	// RenderPurchaseOrder renders the purchase order PDF for a reserved
	// request
	RenderPurchaseOrder(ctx context.Context, req *request.Request, hotel *reference.Hotel, employee *identity.Employee) ([]byte, error)
	// RenderExport renders the tabular purchase order recap covering
	// the given reserved requests
	RenderExport(ctx context.Context, reqs []request.Request, hotels map[uuid.UUID]*reference.Hotel, filter request.ExportFilter) ([]byte, error)
}

// StoredDocument is a document retrieved from the durable store
type StoredDocument struct {
	Data        []byte
	Filename    string
	ContentType string
	Metadata    map[string]string
	UploadedAt  time.Time
}

// Store is the durable blob store for generated documents.
// Retrieve returns NOT_FOUND for unknown identifiers; other failures are
// reported as DOCUMENT_STORE_FAILURE.
type Store interface {
	Store(ctx context.Context, data []byte, filename, contentType string, metadata map[string]string) (uuid.UUID, error)
	Retrieve(ctx context.Context, id uuid.UUID) (*StoredDocument, error)
}
