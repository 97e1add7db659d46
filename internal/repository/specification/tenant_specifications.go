package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedByOrg scopes a query to one organization. Every tool-backed query MUST
// carry this spec; it is the relational half of the tenant-isolation invariant.
type OwnedByOrg struct {
	OrgID uuid.UUID
}

func (s OwnedByOrg) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("organization_id = ?", s.OrgID)
}

// OwnedByProject scopes a query to one project inside an organization.
type OwnedByProject struct {
	ProjectID uuid.UUID
}

func (s OwnedByProject) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ?", s.ProjectID)
}

// UserOwnedBy scopes a query to one user (chat sessions).
type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByChatSessionID filters message history rows for one session.
type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

// DateBetween filters a date column into [From, To). Used for timeline
// bucketing against computed quarter boundaries.
type DateBetween struct {
	Field string
	From  time.Time
	To    time.Time
}

func (s DateBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(s.Field+" >= ? AND "+s.Field+" < ?", s.From, s.To)
}

// DateBefore filters a date column strictly before a boundary ("past" bucket).
type DateBefore struct {
	Field string
	Limit time.Time
}

func (s DateBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(s.Field+" < ?", s.Limit)
}

// DateOnOrAfter filters a date column on or after a boundary ("later" bucket).
type DateOnOrAfter struct {
	Field string
	Limit time.Time
}

func (s DateOnOrAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(s.Field+" >= ?", s.Limit)
}

// ActiveOnly filters sprints to the active one.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// BacklogOnly filters work items that are not assigned to any sprint.
type BacklogOnly struct{}

func (s BacklogOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sprint_id IS NULL")
}

// ByMilestoneID filters initiatives belonging to one milestone.
type ByMilestoneID struct {
	MilestoneID uuid.UUID
}

func (s ByMilestoneID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("milestone_id = ?", s.MilestoneID)
}

// ByObjectiveID filters key results (or initiatives) of one objective.
type ByObjectiveID struct {
	ObjectiveID uuid.UUID
}

func (s ByObjectiveID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("objective_id = ?", s.ObjectiveID)
}

// BySprintID filters work items in one sprint.
type BySprintID struct {
	SprintID uuid.UUID
}

func (s BySprintID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sprint_id = ?", s.SprintID)
}
