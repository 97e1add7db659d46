package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMilestoneRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"required"` // YYYY-MM-DD
}

type UpdateMilestoneRequest struct {
	Id          uuid.UUID
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=planned ready-to-start in-progress completed closed"`
	DueDate     *string `json:"due_date"`
}

type MilestoneResponse struct {
	Id          uuid.UUID  `json:"id"`
	Reference   string     `json:"reference"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     time.Time  `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// MilestoneProgressResponse reports completion across the initiatives linked
// to a milestone.
type MilestoneProgressResponse struct {
	Milestone        MilestoneResponse `json:"milestone"`
	TotalInitiatives int               `json:"total_initiatives"`
	DoneInitiatives  int               `json:"done_initiatives"`
	ProgressPercent  int               `json:"progress_percent"`
	HasLinkedWork    bool              `json:"has_linked_work"`
}

// TimelineBucketResponse groups milestones by their position relative to the
// current quarter.
type TimelineBucketResponse struct {
	Bucket     string              `json:"bucket"`
	Milestones []MilestoneResponse `json:"milestones"`
}
