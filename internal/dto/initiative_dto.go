package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateInitiativeRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	ObjectiveId *uuid.UUID `json:"objective_id"`
	MilestoneId *uuid.UUID `json:"milestone_id"`
	StartDate   *string    `json:"start_date"`  // YYYY-MM-DD
	TargetDate  *string    `json:"target_date"` // YYYY-MM-DD
}

type UpdateInitiativeRequest struct {
	Id          uuid.UUID
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=planned ready-to-start in-progress completed closed"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	StartDate   *string `json:"start_date"`
	TargetDate  *string `json:"target_date"`
}

type InitiativeResponse struct {
	Id          uuid.UUID  `json:"id"`
	Reference   string     `json:"reference"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	ObjectiveId *uuid.UUID `json:"objective_id"`
	MilestoneId *uuid.UUID `json:"milestone_id"`
	StartDate   *time.Time `json:"start_date"`
	TargetDate  *time.Time `json:"target_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
