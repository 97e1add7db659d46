package model

import (
	"github.com/google/uuid"
)

// SequenceCounter backs the per-org human-facing references (I-123, M-4, ...).
// One row per (organization, prefix), bumped atomically with an upsert.
type SequenceCounter struct {
	OrganizationId uuid.UUID `gorm:"type:uuid;primaryKey"`
	Prefix         string    `gorm:"type:varchar(5);primaryKey"`
	Value          int       `gorm:"not null;default:0"`
}

func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
