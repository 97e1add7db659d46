package entity

import (
	"time"

	"github.com/google/uuid"
)

type Initiative struct {
	Id             uuid.UUID
	OrganizationId uuid.UUID
	ProjectId      uuid.UUID
	ObjectiveId    *uuid.UUID
	MilestoneId    *uuid.UUID
	SeqNumber      int
	Reference      string // I-123
	Title          string
	Description    string
	Status         string
	Priority       string
	StartDate      *time.Time
	TargetDate     *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
}
