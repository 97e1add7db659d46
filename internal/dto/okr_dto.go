package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateObjectiveRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	TargetDate  *string `json:"target_date"` // YYYY-MM-DD
}

type UpdateObjectiveRequest struct {
	Id          uuid.UUID
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=planned ready-to-start in-progress completed closed"`
	TargetDate  *string `json:"target_date"`
}

type ObjectiveResponse struct {
	Id          uuid.UUID           `json:"id"`
	Reference   string              `json:"reference"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	TargetDate  *time.Time          `json:"target_date"`
	KeyResults  []KeyResultResponse `json:"key_results,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   *time.Time          `json:"updated_at"`
}

type CreateKeyResultRequest struct {
	ObjectiveId uuid.UUID `json:"objective_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	TargetValue float64   `json:"target_value" validate:"required"`
	Unit        string    `json:"unit"`
}

type UpdateKeyResultProgressRequest struct {
	Id           uuid.UUID
	CurrentValue float64 `json:"current_value"`
}

type KeyResultResponse struct {
	Id           uuid.UUID  `json:"id"`
	Reference    string     `json:"reference"`
	Title        string     `json:"title"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Unit         string     `json:"unit"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}
