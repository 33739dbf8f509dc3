package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityNormal   Priority = "NORMAL"
)

func (p Priority) Valid() bool {
	return p == PriorityCritical || p == PriorityNormal
}

type Note struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Priority  Priority     `gorm:"type:text;not null"`
	Content   string       `gorm:"type:text;not null"`
	AuthorID  snowflake.ID `gorm:"not null;index"`
	CreatedAt time.Time    `gorm:"not null;index"`
}

func (Note) TableName() string { return "admin_monitoring_notes" }
