package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	bookingdomain "github.com/handyheartslabs/handyhearts/internal/booking/domain"
	bookingrepo "github.com/handyheartslabs/handyhearts/internal/booking/repository"
	"github.com/handyheartslabs/handyhearts/internal/config"
	paymentdomain "github.com/handyheartslabs/handyhearts/internal/payment/domain"
	paymentrepo "github.com/handyheartslabs/handyhearts/internal/payment/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now(context.Context) time.Time { return c.now }

func setupScheduler(t *testing.T, cfg config.SchedulerConfig, now time.Time) (*Scheduler, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&paymentdomain.EventRecord{}))
	require.NoError(t, db.Exec(`CREATE TABLE bookings (
		id INTEGER PRIMARY KEY,
		family_id INTEGER NOT NULL,
		provider_id INTEGER,
		service_id INTEGER NOT NULL,
		status TEXT NOT NULL,
		scheduled_at DATETIME NOT NULL,
		duration_hours REAL NOT NULL,
		weekend BOOLEAN NOT NULL DEFAULT FALSE,
		same_day BOOLEAN NOT NULL DEFAULT FALSE,
		address_text TEXT NOT NULL,
		notes TEXT,
		accessibility_needs TEXT,
		price_breakdown TEXT NOT NULL,
		total_amount_cents INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`).Error)

	sched := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		Cfg:      config.Config{Scheduler: cfg},
		Clock:    fixedClock{now: now},
		Bookings: bookingrepo.Provide(),
		Payments: paymentrepo.Provide(),
	})
	return sched, db
}

func seedBooking(t *testing.T, db *gorm.DB, id int64, status bookingdomain.Status, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&bookingdomain.Booking{
		ID:               snowflake.ID(id),
		FamilyID:         snowflake.ID(1),
		ServiceID:        snowflake.ID(2),
		Status:           status,
		ScheduledAt:      createdAt.Add(48 * time.Hour),
		DurationHours:    2,
		AddressText:      "12 Maple Street",
		PriceBreakdown:   datatypes.JSON([]byte(`{"items":[],"total_cents":7000}`)),
		TotalAmountCents: 7000,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}).Error)
}

func TestExpirePendingPayments(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sched, db := setupScheduler(t, config.SchedulerConfig{PendingPaymentTTL: time.Hour}, now)

	seedBooking(t, db, 1, bookingdomain.StatusPendingPayment, now.Add(-2*time.Hour))
	seedBooking(t, db, 2, bookingdomain.StatusPendingPayment, now.Add(-10*time.Minute))
	seedBooking(t, db, 3, bookingdomain.StatusPaid, now.Add(-2*time.Hour))

	require.NoError(t, sched.ExpirePendingPayments(context.Background()))

	var stale, fresh, paid bookingdomain.Booking
	require.NoError(t, db.First(&stale, "id = ?", 1).Error)
	require.NoError(t, db.First(&fresh, "id = ?", 2).Error)
	require.NoError(t, db.First(&paid, "id = ?", 3).Error)

	assert.Equal(t, bookingdomain.StatusCancelled, stale.Status)
	assert.Equal(t, bookingdomain.StatusPendingPayment, fresh.Status)
	assert.Equal(t, bookingdomain.StatusPaid, paid.Status)
}

func TestExpirePendingPaymentsDisabled(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sched, db := setupScheduler(t, config.SchedulerConfig{}, now)

	seedBooking(t, db, 1, bookingdomain.StatusPendingPayment, now.Add(-48*time.Hour))

	require.NoError(t, sched.ExpirePendingPayments(context.Background()))

	var booking bookingdomain.Booking
	require.NoError(t, db.First(&booking, "id = ?", 1).Error)
	assert.Equal(t, bookingdomain.StatusPendingPayment, booking.Status)
}

func TestPurgeWebhookEvents(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sched, db := setupScheduler(t, config.SchedulerConfig{WebhookRetentionDays: 30}, now)

	old := &paymentdomain.EventRecord{
		ID:              snowflake.ID(1),
		Provider:        "stripe",
		ProviderEventID: "evt_old",
		Type:            paymentdomain.EventTypePaymentSucceeded,
		OccurredAt:      now.AddDate(0, 0, -60),
		CreatedAt:       now.AddDate(0, 0, -60),
	}
	recent := &paymentdomain.EventRecord{
		ID:              snowflake.ID(2),
		Provider:        "stripe",
		ProviderEventID: "evt_recent",
		Type:            paymentdomain.EventTypePaymentSucceeded,
		OccurredAt:      now.AddDate(0, 0, -1),
		CreatedAt:       now.AddDate(0, 0, -1),
	}
	require.NoError(t, db.Create(old).Error)
	require.NoError(t, db.Create(recent).Error)

	require.NoError(t, sched.PurgeWebhookEvents(context.Background()))

	var remaining []paymentdomain.EventRecord
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "evt_recent", remaining[0].ProviderEventID)
}
