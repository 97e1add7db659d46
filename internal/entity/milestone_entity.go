package entity

import (
	"time"

	"github.com/google/uuid"
)

type Milestone struct {
	Id             uuid.UUID
	OrganizationId uuid.UUID
	ProjectId      uuid.UUID
	SeqNumber      int
	Reference      string // M-4
	Title          string
	Description    string
	Status         string
	DueDate        time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
}
