package repository

import (
	"context"
	"time"

	"github.com/handyheartslabs/handyhearts/internal/payment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertIntent(ctx context.Context, db *gorm.DB, intent *domain.IntentRecord) error {
	return db.WithContext(ctx).Create(intent).Error
}

func (r *repo) UpdateIntentStatus(ctx context.Context, db *gorm.DB, providerIntentID, status string, now time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.IntentRecord{}).
		Where("provider_intent_id = ?", providerIntentID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": now,
		}).Error
}

func (r *repo) InsertEvent(ctx context.Context, db *gorm.DB, event *domain.EventRecord) error {
	return db.WithContext(ctx).Create(event).Error
}

func (r *repo) EventExists(ctx context.Context, db *gorm.DB, provider, providerEventID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.EventRecord{}).
		Where("provider = ? AND provider_event_id = ?", provider, providerEventID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) PurgeEventsBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.EventRecord{})
	return result.RowsAffected, result.Error
}
