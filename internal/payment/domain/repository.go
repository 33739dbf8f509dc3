package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	InsertIntent(ctx context.Context, db *gorm.DB, intent *IntentRecord) error
	UpdateIntentStatus(ctx context.Context, db *gorm.DB, providerIntentID, status string, now time.Time) error
	InsertEvent(ctx context.Context, db *gorm.DB, event *EventRecord) error
	EventExists(ctx context.Context, db *gorm.DB, provider, providerEventID string) (bool, error)
	// PurgeEventsBefore removes webhook events older than the cutoff and
	// reports how many rows were deleted.
	PurgeEventsBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}
