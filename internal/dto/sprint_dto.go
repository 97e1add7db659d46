package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSprintRequest struct {
	Name      string `json:"name" validate:"required"`
	Goal      string `json:"goal"`
	StartDate string `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" validate:"required"`   // YYYY-MM-DD
}

type SprintResponse struct {
	Id        uuid.UUID  `json:"id"`
	Reference string     `json:"reference"`
	Name      string     `json:"name"`
	Goal      string     `json:"goal"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type CreateWorkItemRequest struct {
	Title        string     `json:"title" validate:"required"`
	Description  string     `json:"description"`
	Priority     string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	Estimate     int        `json:"estimate"`
	InitiativeId *uuid.UUID `json:"initiative_id"`
	SprintId     *uuid.UUID `json:"sprint_id"` // nil lands the item in the backlog
}

type UpdateWorkItemRequest struct {
	Id          uuid.UUID
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=planned ready-to-start in-progress completed closed"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Estimate    *int    `json:"estimate"`
}

type MoveWorkItemRequest struct {
	Id       uuid.UUID
	SprintId *uuid.UUID `json:"sprint_id"` // nil moves the item back to the backlog
}

type WorkItemResponse struct {
	Id           uuid.UUID  `json:"id"`
	Reference    string     `json:"reference"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	Estimate     int        `json:"estimate"`
	InitiativeId *uuid.UUID `json:"initiative_id"`
	SprintId     *uuid.UUID `json:"sprint_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}
