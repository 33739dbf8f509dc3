package scheduler

import (
	"context"
	"time"

	bookingdomain "github.com/handyheartslabs/handyhearts/internal/booking/domain"
	"github.com/handyheartslabs/handyhearts/internal/clock"
	"github.com/handyheartslabs/handyhearts/internal/config"
	paymentdomain "github.com/handyheartslabs/handyhearts/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultInterval = time.Minute

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Cfg      config.Config
	Clock    clock.Clock
	Bookings bookingdomain.Repository
	Payments paymentdomain.Repository
}

type Scheduler struct {
	db       *gorm.DB
	log      *zap.Logger
	cfg      config.SchedulerConfig
	clock    clock.Clock
	bookings bookingdomain.Repository
	payments paymentdomain.Repository
}

func New(p Params) *Scheduler {
	return &Scheduler{
		db:       p.DB,
		log:      p.Log.Named("scheduler"),
		cfg:      p.Cfg.Scheduler,
		clock:    p.Clock,
		bookings: p.Bookings,
		payments: p.Payments,
	}
}

// RunForever ticks the maintenance jobs until the context is cancelled.
func (s *Scheduler) RunForever(ctx context.Context) {
	interval := s.cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	s.log.Info("scheduler started", zap.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes every job a single time. Job failures are logged and
// do not stop the remaining jobs.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if err := s.ExpirePendingPayments(ctx); err != nil {
		s.log.Error("expire pending payments failed", zap.Error(err))
	}
	if err := s.PurgeWebhookEvents(ctx); err != nil {
		s.log.Error("purge webhook events failed", zap.Error(err))
	}
}

// ExpirePendingPayments cancels bookings that sat in PENDING_PAYMENT
// past the configured TTL, freeing the slot for rebooking.
func (s *Scheduler) ExpirePendingPayments(ctx context.Context) error {
	ttl := s.cfg.PendingPaymentTTL
	if ttl <= 0 {
		return nil
	}

	now := s.clock.Now(ctx)
	cutoff := now.Add(-ttl)

	expired, err := s.bookings.ExpirePendingPayments(ctx, s.db, cutoff, now)
	if err != nil {
		return err
	}
	if expired > 0 {
		s.log.Info("expired unpaid bookings",
			zap.Int64("count", expired),
			zap.Time("cutoff", cutoff))
	}
	return nil
}

// PurgeWebhookEvents trims stored payment events past the retention
// window.
func (s *Scheduler) PurgeWebhookEvents(ctx context.Context) error {
	retentionDays := s.cfg.WebhookRetentionDays
	if retentionDays <= 0 {
		return nil
	}

	cutoff := s.clock.Now(ctx).AddDate(0, 0, -retentionDays)
	deleted, err := s.payments.PurgeEventsBefore(ctx, s.db, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.log.Info("purged webhook events",
			zap.Int64("count", deleted),
			zap.Time("cutoff", cutoff))
	}
	return nil
}
