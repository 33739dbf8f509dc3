package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusNew      Status = "new"
	StatusInReview Status = "in_review"
	StatusAssigned Status = "assigned"
	StatusClosed   Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInReview, StatusAssigned, StatusClosed:
		return true
	}
	return false
}

// Submission is a free-form service request. Unlike bookings it has no
// payment attached; admins triage, optionally quote, and assign a
// provider by hand.
type Submission struct {
	ID                     snowflake.ID  `gorm:"primaryKey"`
	UserID                 snowflake.ID  `gorm:"not null;index"`
	RoleSnapshot           string        `gorm:"type:text;not null"`
	FullName               string        `gorm:"type:text;not null"`
	PhoneE164              string        `gorm:"type:text;not null"`
	Email                  string        `gorm:"type:text;not null"`
	ServiceRequested       string        `gorm:"type:text;not null"`
	PreferredDate          *time.Time    `gorm:""`
	Notes                  string        `gorm:"type:text"`
	Status                 Status        `gorm:"type:text;not null;index"`
	AssignedProviderUserID *snowflake.ID `gorm:"index"`
	TotalPriceCents        *int64        `gorm:""`
	CreatedAt              time.Time     `gorm:"not null"`
	UpdatedAt              time.Time     `gorm:"not null"`
}

func (Submission) TableName() string { return "inquiry_submissions" }
