package entity

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	Id        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

type Project struct {
	Id             uuid.UUID
	OrganizationId uuid.UUID
	Name           string
	Description    string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
}
