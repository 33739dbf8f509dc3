package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	bookingdomain "github.com/handyheartslabs/handyhearts/internal/booking/domain"
	"github.com/handyheartslabs/handyhearts/internal/clock"
	"github.com/handyheartslabs/handyhearts/internal/payment/domain"
	redisclient "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const eventDedupeTTL = 24 * time.Hour

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Redis    *redisclient.Client `optional:"true"`
	Adapter  domain.Adapter
	Repo     domain.Repository
	Bookings bookingdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	redis    *redisclient.Client
	adapter  domain.Adapter
	repo     domain.Repository
	bookings bookingdomain.Service
}

func New(p Params) domain.WebhookService {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("payment.webhook"),
		genID:    p.GenID,
		clock:    p.Clock,
		redis:    p.Redis,
		adapter:  p.Adapter,
		repo:     p.Repo,
		bookings: p.Bookings,
	}
}

func (s *Service) IngestWebhook(ctx context.Context, payload []byte, headers http.Header) error {
	if !json.Valid(payload) {
		return domain.ErrInvalidPayload
	}

	if err := s.adapter.Verify(ctx, payload, headers); err != nil {
		return err
	}

	event, err := s.adapter.Parse(ctx, payload)
	if err != nil {
		if errors.Is(err, domain.ErrEventIgnored) {
			s.log.Debug("webhook event ignored")
			return nil
		}
		s.log.Warn("webhook parse failed", zap.Error(err))
		return err
	}

	duplicate, err := s.seenBefore(ctx, event)
	if err != nil {
		return err
	}
	if duplicate {
		s.log.Info("duplicate webhook event skipped",
			zap.String("provider_event_id", event.ProviderEventID))
		return nil
	}

	// Apply before recording the event. The permanent dedupe row is only
	// written once the transition succeeded, so a transient failure here
	// leaves the provider's retry eligible for reprocessing.
	now := s.clock.Now(ctx)
	if err := s.apply(ctx, event, now); err != nil {
		s.releaseClaim(ctx, event)
		return err
	}

	record := &domain.EventRecord{
		ID:              s.genID.Generate(),
		Provider:        event.Provider,
		ProviderEventID: event.ProviderEventID,
		BookingID:       event.BookingID,
		Type:            event.Type,
		AmountCents:     event.AmountCents,
		Currency:        event.Currency,
		OccurredAt:      event.OccurredAt,
		RawPayload:      maskPayload(event.RawPayload),
		CreatedAt:       now,
	}
	if err := s.repo.InsertEvent(ctx, s.db, record); err != nil {
		s.releaseClaim(ctx, event)
		return err
	}
	return nil
}

func (s *Service) apply(ctx context.Context, event *domain.PaymentEvent, now time.Time) error {
	switch event.Type {
	case domain.EventTypePaymentSucceeded:
		return s.applySucceeded(ctx, event, now)
	case domain.EventTypePaymentFailed:
		return s.repo.UpdateIntentStatus(ctx, s.db, event.ProviderPaymentID, domain.IntentStatusFailed, now)
	default:
		return nil
	}
}

func (s *Service) applySucceeded(ctx context.Context, event *domain.PaymentEvent, now time.Time) error {
	if err := s.repo.UpdateIntentStatus(ctx, s.db, event.ProviderPaymentID, domain.IntentStatusSucceeded, now); err != nil {
		return err
	}

	_, err := s.bookings.MarkPaid(ctx, event.BookingID.String())
	if err != nil {
		// A replayed success for an already paid booking is not a failure.
		if errors.Is(err, bookingdomain.ErrInvalidTransition) {
			s.log.Warn("payment succeeded for booking not awaiting payment",
				zap.String("booking_id", event.BookingID.String()))
			return nil
		}
		return err
	}

	s.log.Info("booking paid",
		zap.String("booking_id", event.BookingID.String()),
		zap.Int64("amount_cents", event.AmountCents))
	return nil
}

// seenBefore dedupes on the provider event ID, first through Redis
// SETNX and then against the payment_events table as a backstop. The
// Redis claim is provisional until the event row lands; releaseClaim
// undoes it when processing fails.
func (s *Service) seenBefore(ctx context.Context, event *domain.PaymentEvent) (bool, error) {
	if s.redis != nil {
		fresh, err := s.redis.SetNX(ctx, dedupeKey(event), 1, eventDedupeTTL).Result()
		if err != nil {
			s.log.Warn("webhook dedupe cache unavailable", zap.Error(err))
		} else if !fresh {
			return true, nil
		}
	}
	return s.repo.EventExists(ctx, s.db, event.Provider, event.ProviderEventID)
}

func (s *Service) releaseClaim(ctx context.Context, event *domain.PaymentEvent) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, dedupeKey(event)).Err(); err != nil {
		s.log.Warn("webhook dedupe release failed",
			zap.String("provider_event_id", event.ProviderEventID), zap.Error(err))
	}
}

func dedupeKey(event *domain.PaymentEvent) string {
	return "payment_event:" + event.Provider + ":" + event.ProviderEventID
}

func maskPayload(raw []byte) []byte {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return raw
	}
	maskMap(obj)
	masked, err := json.Marshal(obj)
	if err != nil {
		return raw
	}
	return masked
}

func maskMap(m map[string]any) {
	for k, v := range m {
		switch strings.ToLower(k) {
		case "card", "billing_details", "shipping", "payment_method_details":
			m[k] = "***"
		default:
			if nested, ok := v.(map[string]any); ok {
				maskMap(nested)
			} else if arr, ok := v.([]any); ok {
				for _, item := range arr {
					if itemMap, ok := item.(map[string]any); ok {
						maskMap(itemMap)
					}
				}
			}
		}
	}
}
