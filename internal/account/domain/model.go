package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Role string

const (
	RoleFamily   Role = "FAMILY"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleFamily, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// User is a platform account. Providers start unapproved and must be
// vetted by an admin before they can see assigned work.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Email        string       `gorm:"type:text;not null;uniqueIndex"`
	Name         string       `gorm:"type:text;not null"`
	PasswordHash string       `gorm:"type:text;not null"`
	Role         Role         `gorm:"type:text;not null"`
	IsApproved   bool         `gorm:"not null;default:false"`
	IsBanned     bool         `gorm:"not null;default:false"`
	PhoneE164    string       `gorm:"type:text"`
	CreatedAt    time.Time    `gorm:"not null"`
	UpdatedAt    time.Time    `gorm:"not null"`
}

func (User) TableName() string { return "app_users" }
