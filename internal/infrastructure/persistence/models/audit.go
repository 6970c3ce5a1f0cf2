package models

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/hrs/backend/internal/domain/audit"
)

// AuditEntryModel is the persistence model for the audit trail
type AuditEntryModel struct {
	BaseModel
	Action       string     `gorm:"size:64;not null;index"`
	Entity       string     `gorm:"size:64;not null;index:idx_audit_entity"`
	EntityID     string     `gorm:"size:64;not null;index:idx_audit_entity"`
	ActorID      *uuid.UUID `gorm:"type:uuid;index"`
	MetadataJSON string     `gorm:"column:metadata;type:jsonb;default:'{}'"`
}

// TableName specifies the table name
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// ToDomain converts the persistence model to the domain entity
func (m *AuditEntryModel) ToDomain() (*audit.Entry, error) {
	e := &audit.Entry{
		Action:   m.Action,
		Entity:   m.Entity,
		EntityID: m.EntityID,
		ActorID:  m.ActorID,
	}
	e.BaseEntity = m.BaseModel.ToDomain()

	if m.MetadataJSON != "" {
		if err := json.Unmarshal([]byte(m.MetadataJSON), &e.Metadata); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// FromDomain populates the persistence model from the domain entity
func (m *AuditEntryModel) FromDomain(e *audit.Entry) error {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Action = e.Action
	m.Entity = e.Entity
	m.EntityID = e.EntityID
	m.ActorID = e.ActorID

	metadata := e.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	m.MetadataJSON = string(raw)
	return nil
}
