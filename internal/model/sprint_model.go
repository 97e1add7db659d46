package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Sprint struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProjectId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	SeqNumber      int            `gorm:"not null"`
	Reference      string         `gorm:"type:varchar(20);not null;index"`
	Name           string         `gorm:"type:varchar(255);not null"`
	Goal           string         `gorm:"type:text"`
	StartDate      time.Time      `gorm:"type:date;not null"`
	EndDate        time.Time      `gorm:"type:date;not null"`
	IsActive       bool           `gorm:"not null;default:false;index"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Sprint) TableName() string {
	return "sprints"
}

type WorkItem struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProjectId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	InitiativeId   *uuid.UUID     `gorm:"type:uuid;index"`
	SprintId       *uuid.UUID     `gorm:"type:uuid;index"`
	SeqNumber      int            `gorm:"not null"`
	Reference      string         `gorm:"type:varchar(20);not null;index"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Description    string         `gorm:"type:text"`
	Status         string         `gorm:"type:varchar(50);not null;default:'planned'"`
	Priority       string         `gorm:"type:varchar(20);not null;default:'medium'"`
	Estimate       int            `gorm:"not null;default:0"`
	AssigneeId     *uuid.UUID     `gorm:"type:uuid;index"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (WorkItem) TableName() string {
	return "work_items"
}
