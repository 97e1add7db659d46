package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Milestone struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProjectId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	SeqNumber      int            `gorm:"not null"`
	Reference      string         `gorm:"type:varchar(20);not null;index"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Description    string         `gorm:"type:text"`
	Status         string         `gorm:"type:varchar(50);not null;default:'planned'"`
	DueDate        time.Time      `gorm:"type:date;not null"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Milestone) TableName() string {
	return "milestones"
}
