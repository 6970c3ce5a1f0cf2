package audit

import "context"

// Repository defines the persistence operations for the audit trail
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	FindByEntity(ctx context.Context, entity, entityID string) ([]Entry, error)
}
