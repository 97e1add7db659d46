package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Objective struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProjectId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	SeqNumber      int            `gorm:"not null"`
	Reference      string         `gorm:"type:varchar(20);not null;index"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Description    string         `gorm:"type:text"`
	Status         string         `gorm:"type:varchar(50);not null;default:'planned'"`
	TargetDate     *time.Time     `gorm:"type:date"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Objective) TableName() string {
	return "objectives"
}

type KeyResult struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ObjectiveId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	SeqNumber    int            `gorm:"not null"`
	Reference    string         `gorm:"type:varchar(20);not null;index"`
	Title        string         `gorm:"type:varchar(255);not null"`
	TargetValue  float64        `gorm:"not null;default:0"`
	CurrentValue float64        `gorm:"not null;default:0"`
	Unit         string         `gorm:"type:varchar(50)"`
	Status       string         `gorm:"type:varchar(50);not null;default:'planned'"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (KeyResult) TableName() string {
	return "key_results"
}
