package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusPendingQuote   Status = "PENDING_QUOTE"
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusPaid           Status = "PAID"
	StatusAssigned       Status = "ASSIGNED"
	StatusInProgress     Status = "IN_PROGRESS"
	StatusCompleted      Status = "COMPLETED"
	StatusCancelled      Status = "CANCELLED"
)

// transitions is the full status machine. CANCELLED is reachable from
// every non-terminal state; COMPLETED and CANCELLED are terminal.
var transitions = map[Status][]Status{
	StatusPendingQuote:   {StatusPendingPayment, StatusCancelled},
	StatusPendingPayment: {StatusPaid, StatusCancelled},
	StatusPaid:           {StatusAssigned, StatusCancelled},
	StatusAssigned:       {StatusInProgress, StatusCancelled},
	StatusInProgress:     {StatusCompleted, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Booking is a paid-for service visit. PriceBreakdown is the quote
// snapshot taken at creation; TotalAmountCents always equals its total
// and is the only amount ever sent to the payment processor.
type Booking struct {
	ID                 snowflake.ID   `gorm:"primaryKey"`
	FamilyID           snowflake.ID   `gorm:"not null;index"`
	ProviderID         *snowflake.ID  `gorm:"index"`
	ServiceID          snowflake.ID   `gorm:"not null;index"`
	Status             Status         `gorm:"type:text;not null;index"`
	ScheduledAt        time.Time      `gorm:"not null"`
	DurationHours      float64        `gorm:"not null"`
	Weekend            bool           `gorm:"not null"`
	SameDay            bool           `gorm:"not null"`
	AddressText        string         `gorm:"type:text;not null"`
	Notes              string         `gorm:"type:text"`
	AccessibilityNeeds pq.StringArray `gorm:"type:text[]"`
	PriceBreakdown     datatypes.JSON `gorm:"type:jsonb;not null"`
	TotalAmountCents   int64          `gorm:"not null"`
	CreatedAt          time.Time      `gorm:"not null"`
	UpdatedAt          time.Time      `gorm:"not null"`
}

func (Booking) TableName() string { return "bookings" }
