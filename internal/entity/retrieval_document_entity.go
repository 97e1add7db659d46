package entity

import (
	"time"

	"github.com/google/uuid"
)

// RetrievalDocument is one indexed snippet in the similarity store. Metadata
// carries the tenant scope (orgId, userId, projectId), the source documentType
// and entityId. The index is a best-effort cache over the relational source of
// truth, never authoritative.
type RetrievalDocument struct {
	Id        uuid.UUID
	Content   string
	Embedding []float32
	Metadata  map[string]interface{}
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// DocumentMetadata is the typed view of the metadata blob used when writing.
type DocumentMetadata struct {
	OrgId        uuid.UUID
	UserId       uuid.UUID
	ProjectId    uuid.UUID
	DocumentType string
	EntityId     uuid.UUID
}

func (m DocumentMetadata) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"orgId":        m.OrgId.String(),
		"userId":       m.UserId.String(),
		"projectId":    m.ProjectId.String(),
		"documentType": m.DocumentType,
		"entityId":     m.EntityId.String(),
	}
}
