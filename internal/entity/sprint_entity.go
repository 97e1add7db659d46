package entity

import (
	"time"

	"github.com/google/uuid"
)

// Sprint groups work items for a delivery window. A project has at most one
// active sprint at a time; the service layer enforces it on activation.
type Sprint struct {
	Id             uuid.UUID
	OrganizationId uuid.UUID
	ProjectId      uuid.UUID
	SeqNumber      int
	Reference      string // S-7
	Name           string
	Goal           string
	StartDate      time.Time
	EndDate        time.Time
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
}

type WorkItem struct {
	Id             uuid.UUID
	OrganizationId uuid.UUID
	ProjectId      uuid.UUID
	InitiativeId   *uuid.UUID
	SprintId       *uuid.UUID // nil means backlog
	SeqNumber      int
	Reference      string // W-45
	Title          string
	Description    string
	Status         string
	Priority       string
	Estimate       int
	AssigneeId     *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
}
