package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	IntentStatusPending   = "pending"
	IntentStatusSucceeded = "succeeded"
	IntentStatusFailed    = "failed"
)

type IntentRecord struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	BookingID        snowflake.ID `gorm:"not null;index"`
	Provider         string       `gorm:"type:text;not null"`
	ProviderIntentID string       `gorm:"type:text;not null;uniqueIndex"`
	AmountCents      int64        `gorm:"not null"`
	Currency         string       `gorm:"type:text;not null"`
	Status           string       `gorm:"type:text;not null"`
	CreatedAt        time.Time    `gorm:"not null"`
	UpdatedAt        time.Time    `gorm:"not null"`
}

func (IntentRecord) TableName() string { return "payment_intents" }

// EventRecord persists every accepted webhook event. RawPayload is
// stored with card and billing details masked.
type EventRecord struct {
	ID              snowflake.ID   `gorm:"primaryKey"`
	Provider        string         `gorm:"type:text;not null"`
	ProviderEventID string         `gorm:"type:text;not null;uniqueIndex"`
	BookingID       snowflake.ID   `gorm:"index"`
	Type            string         `gorm:"type:text;not null"`
	AmountCents     int64          `gorm:"not null"`
	Currency        string         `gorm:"type:text"`
	OccurredAt      time.Time      `gorm:"not null"`
	RawPayload      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"not null"`
}

func (EventRecord) TableName() string { return "payment_events" }
