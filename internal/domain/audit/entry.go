package audit

import (
	"github.com/google/uuid"

	"github.com/hrs/backend/internal/domain/shared"
)

// Entry is an append-only trail record of a workflow action
type Entry struct {
	shared.BaseEntity
	Action   string
	Entity   string
	EntityID string
	ActorID  *uuid.UUID
	Metadata map[string]interface{}
}

// NewEntry creates a new audit trail entry
func NewEntry(action, entity, entityID string, actorID *uuid.UUID, metadata map[string]interface{}) *Entry {
	return &Entry{
		BaseEntity: shared.NewBaseEntity(),
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		ActorID:    actorID,
		Metadata:   metadata,
	}
}
