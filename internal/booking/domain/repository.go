package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	FamilyID   snowflake.ID
	ProviderID snowflake.ID
	Status     string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, booking *Booking) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Booking, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Booking, error)
	Update(ctx context.Context, db *gorm.DB, booking *Booking) error
	// ExpirePendingPayments cancels bookings stuck awaiting payment past
	// the cutoff and reports how many rows changed.
	ExpirePendingPayments(ctx context.Context, db *gorm.DB, cutoff, now time.Time) (int64, error)
}
