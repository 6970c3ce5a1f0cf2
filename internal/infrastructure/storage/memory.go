package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hrs/backend/internal/application/document"
	"github.com/hrs/backend/internal/domain/shared"
)

// Ensure MemoryDocumentStore implements document.Store
var _ document.Store = (*MemoryDocumentStore)(nil)

// MemoryDocumentStore keeps documents in process memory. It backs
// deployments that run without object storage: documents are lost on
// restart and the fetch path regenerates them on demand.
type MemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]*document.StoredDocument
}

// NewMemoryDocumentStore creates a new MemoryDocumentStore
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{
		docs: make(map[uuid.UUID]*document.StoredDocument),
	}
}

// Store saves a document and returns its identifier
func (s *MemoryDocumentStore) Store(ctx context.Context, data []byte, filename, contentType string, metadata map[string]string) (uuid.UUID, error) {
	if len(data) == 0 {
		return uuid.Nil, shared.NewDomainError(shared.CodeDocumentStoreFailure, "Document content is empty")
	}

	id := uuid.New()

	stored := make([]byte, len(data))
	copy(stored, data)

	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = &document.StoredDocument{
		Data:        stored,
		Filename:    filename,
		ContentType: contentType,
		Metadata:    meta,
		UploadedAt:  time.Now(),
	}

	return id, nil
}

// Retrieve fetches a stored document by its identifier
func (s *MemoryDocumentStore) Retrieve(ctx context.Context, id uuid.UUID) (*document.StoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return doc, nil
}

// Len returns the number of stored documents
func (s *MemoryDocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
