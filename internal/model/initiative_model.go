package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Initiative struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProjectId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	ObjectiveId    *uuid.UUID     `gorm:"type:uuid;index"`
	MilestoneId    *uuid.UUID     `gorm:"type:uuid;index"`
	SeqNumber      int            `gorm:"not null"`
	Reference      string         `gorm:"type:varchar(20);not null;index"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Description    string         `gorm:"type:text"`
	Status         string         `gorm:"type:varchar(50);not null;default:'planned'"`
	Priority       string         `gorm:"type:varchar(20);not null;default:'medium'"`
	StartDate      *time.Time     `gorm:"type:date"`
	TargetDate     *time.Time     `gorm:"type:date"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Initiative) TableName() string {
	return "initiatives"
}
