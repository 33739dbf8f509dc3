package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/handyheartslabs/handyhearts/internal/booking/domain"
	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, booking *domain.Booking) error {
	return db.WithContext(ctx).Create(booking).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Booking, error) {
	var booking domain.Booking
	err := db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Booking, error) {
	var bookings []*domain.Booking

	query := db.WithContext(ctx).Model(&domain.Booking{})
	if filter.FamilyID != 0 {
		query = query.Where("family_id = ?", filter.FamilyID)
	}
	if filter.ProviderID != 0 {
		query = query.Where("provider_id = ?", filter.ProviderID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	query = query.Scopes(pagination.Apply(page)).Order("created_at desc, id desc")

	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, booking *domain.Booking) error {
	return db.WithContext(ctx).Save(booking).Error
}

func (r *repo) ExpirePendingPayments(ctx context.Context, db *gorm.DB, cutoff, now time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("status = ? AND created_at < ?", domain.StatusPendingPayment, cutoff).
		Updates(map[string]any{"status": domain.StatusCancelled, "updated_at": now})
	return result.RowsAffected, result.Error
}
