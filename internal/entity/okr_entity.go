package entity

import (
	"time"

	"github.com/google/uuid"
)

// Objective is the top of the delivery hierarchy: objective → key results,
// delivered by initiatives.
type Objective struct {
	Id             uuid.UUID
	OrganizationId uuid.UUID
	ProjectId      uuid.UUID
	SeqNumber      int
	Reference      string // O-12
	Title          string
	Description    string
	Status         string
	TargetDate     *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
}

type KeyResult struct {
	Id           uuid.UUID
	ObjectiveId  uuid.UUID
	SeqNumber    int
	Reference    string // K-3
	Title        string
	TargetValue  float64
	CurrentValue float64
	Unit         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}
