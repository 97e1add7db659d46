package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// RetrievalDocument stores one embedded snippet. Metadata is queried with
// jsonb containment so the tenant filter (orgId+userId+projectId) is an exact
// AND match inside the database, not in application code.
type RetrievalDocument struct {
	Id        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content   string            `gorm:"type:text;not null"`
	Embedding pgvector.Vector   `gorm:"type:vector(768)"` // nomic-embed-text / text-embedding-004 use 768 dims
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime"`
}

func (RetrievalDocument) TableName() string {
	return "retrieval_documents"
}
