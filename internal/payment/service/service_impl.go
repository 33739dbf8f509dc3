package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/handyheartslabs/handyhearts/internal/account/domain"
	"github.com/handyheartslabs/handyhearts/internal/actorcontext"
	bookingdomain "github.com/handyheartslabs/handyhearts/internal/booking/domain"
	"github.com/handyheartslabs/handyhearts/internal/clock"
	"github.com/handyheartslabs/handyhearts/internal/config"
	"github.com/handyheartslabs/handyhearts/internal/payment/domain"
	"github.com/handyheartslabs/handyhearts/internal/pricing"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Cfg      config.Config
	Adapter  domain.Adapter
	Repo     domain.Repository
	Bookings bookingdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	currency string
	adapter  domain.Adapter
	repo     domain.Repository
	bookings bookingdomain.Repository
}

func New(p Params) domain.Service {
	currency := strings.TrimSpace(p.Cfg.Stripe.Currency)
	if currency == "" {
		currency = "usd"
	}
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("payment.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		currency: currency,
		adapter:  p.Adapter,
		repo:     p.Repo,
		bookings: p.Bookings,
	}
}

// CreateIntent opens a payment for a booking awaiting payment. The
// amount always comes from the stored quote snapshot, never from the
// client.
func (s *Service) CreateIntent(ctx context.Context, req domain.CreateIntentRequest) (*domain.IntentResponse, error) {
	actor, ok := actorcontext.FromContext(ctx)
	if !ok {
		return nil, domain.ErrMissingActor
	}

	bookingID, err := snowflake.ParseString(strings.TrimSpace(req.BookingID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	booking, err := s.bookings.FindByID(ctx, s.db, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}
	if actor.Role != string(accountdomain.RoleAdmin) && booking.FamilyID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if booking.Status != bookingdomain.StatusPendingPayment {
		return nil, domain.ErrBookingNotPayable
	}

	var breakdown pricing.Breakdown
	if err := json.Unmarshal(booking.PriceBreakdown, &breakdown); err != nil {
		return nil, err
	}

	intent, err := s.adapter.CreatePaymentIntent(ctx, domain.IntentInput{
		AmountCents: booking.TotalAmountCents,
		Currency:    s.currency,
		Metadata: map[string]string{
			"booking_id": booking.ID.String(),
		},
	})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	record := &domain.IntentRecord{
		ID:               s.genID.Generate(),
		BookingID:        booking.ID,
		Provider:         "stripe",
		ProviderIntentID: intent.ID,
		AmountCents:      booking.TotalAmountCents,
		Currency:         s.currency,
		Status:           domain.IntentStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.InsertIntent(ctx, s.db, record); err != nil {
		return nil, err
	}

	s.log.Info("payment intent created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("provider_intent_id", intent.ID),
		zap.Int64("amount_cents", booking.TotalAmountCents))

	return &domain.IntentResponse{
		IntentID:       intent.ID,
		ClientSecret:   intent.ClientSecret,
		AmountCents:    booking.TotalAmountCents,
		Currency:       s.currency,
		PriceBreakdown: breakdown,
	}, nil
}
