package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/handyheartslabs/handyhearts/internal/pricing"
)

// Service is a bookable catalog entry and the authoritative source of
// billing terms. Rates are integer cents per hour.
type Service struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	Code          string       `gorm:"type:text;not null;uniqueIndex"`
	Name          string       `gorm:"type:text;not null"`
	Description   string       `gorm:"type:text"`
	BaseRateCents int64        `gorm:"not null"`
	MinHours      float64      `gorm:"not null"`
	Active        bool         `gorm:"not null;default:true"`
	CreatedAt     time.Time    `gorm:"not null"`
	UpdatedAt     time.Time    `gorm:"not null"`
}

func (Service) TableName() string { return "services" }

// Rate narrows the catalog row to the value type the pricing engine
// accepts, keeping row-shape concerns out of the engine.
func (s *Service) Rate() pricing.ServiceRate {
	return pricing.ServiceRate{
		Name:          s.Name,
		BaseRateCents: s.BaseRateCents,
		MinHours:      s.MinHours,
	}
}
