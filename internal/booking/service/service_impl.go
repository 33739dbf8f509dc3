package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lib/pq"

	accountdomain "github.com/handyheartslabs/handyhearts/internal/account/domain"
	"github.com/handyheartslabs/handyhearts/internal/actorcontext"
	"github.com/handyheartslabs/handyhearts/internal/booking/domain"
	catalogdomain "github.com/handyheartslabs/handyhearts/internal/catalog/domain"
	"github.com/handyheartslabs/handyhearts/internal/clock"
	"github.com/handyheartslabs/handyhearts/internal/pricing"
	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
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
	Repo     domain.Repository
	Catalog  catalogdomain.Repository
	Accounts accountdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	catalog  catalogdomain.Repository
	accounts accountdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("booking.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		catalog:  p.Catalog,
		accounts: p.Accounts,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	actor, ok := actorcontext.FromContext(ctx)
	if !ok {
		return nil, domain.ErrMissingActor
	}

	serviceID, err := snowflake.ParseString(strings.TrimSpace(req.ServiceID))
	if err != nil {
		return nil, domain.ErrInvalidService
	}
	scheduledAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.ScheduledAt))
	if err != nil {
		return nil, domain.ErrInvalidSchedule
	}
	scheduledAt = scheduledAt.UTC()
	if req.DurationHours <= 0 {
		return nil, domain.ErrInvalidDuration
	}
	address := strings.TrimSpace(req.AddressText)
	if address == "" {
		return nil, domain.ErrInvalidAddress
	}

	record, err := s.catalog.FindByID(ctx, s.db, serviceID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrInvalidService
	}
	if !record.Active {
		return nil, catalogdomain.ErrInactive
	}

	now := s.clock.Now(ctx)
	if scheduledAt.Before(now) {
		return nil, domain.ErrInvalidSchedule
	}

	// Modifier flags are derived server-side from the schedule; client
	// input never changes the price.
	weekend := isWeekend(scheduledAt)
	sameDay := sameCalendarDay(scheduledAt, now)

	breakdown := pricing.Calculate(record.Rate(), req.DurationHours, weekend, sameDay)
	snapshot, err := json.Marshal(breakdown)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:                 s.genID.Generate(),
		FamilyID:           actor.UserID,
		ServiceID:          serviceID,
		Status:             domain.StatusPendingPayment,
		ScheduledAt:        scheduledAt,
		DurationHours:      req.DurationHours,
		Weekend:            weekend,
		SameDay:            sameDay,
		AddressText:        address,
		Notes:              strings.TrimSpace(req.Notes),
		AccessibilityNeeds: pq.StringArray(req.AccessibilityNeeds),
		PriceBreakdown:     snapshot,
		TotalAmountCents:   breakdown.TotalCents,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Insert(ctx, s.db, booking); err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("service_id", serviceID.String()),
		zap.Int64("total_cents", booking.TotalAmountCents))

	return s.toResponse(booking)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeRead(ctx, booking); err != nil {
		return nil, err
	}
	return s.toResponse(booking)
}

func (s *Service) ListByFamily(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	actor, ok := actorcontext.FromContext(ctx)
	if !ok {
		return domain.ListResponse{}, domain.ErrMissingActor
	}
	return s.list(ctx, domain.ListFilter{FamilyID: actor.UserID, Status: req.Status}, req)
}

func (s *Service) ListByProvider(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	actor, ok := actorcontext.FromContext(ctx)
	if !ok {
		return domain.ListResponse{}, domain.ErrMissingActor
	}
	return s.list(ctx, domain.ListFilter{ProviderID: actor.UserID, Status: req.Status}, req)
}

func (s *Service) ListAll(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	return s.list(ctx, domain.ListFilter{Status: req.Status}, req)
}

func (s *Service) Assign(ctx context.Context, id, providerID string) (*domain.Response, error) {
	pid, err := snowflake.ParseString(strings.TrimSpace(providerID))
	if err != nil {
		return nil, domain.ErrInvalidProvider
	}

	provider, err := s.accounts.FindByID(ctx, s.db, pid)
	if err != nil {
		return nil, err
	}
	if provider == nil || provider.Role != accountdomain.RoleProvider {
		return nil, domain.ErrInvalidProvider
	}
	if !provider.IsApproved || provider.IsBanned {
		return nil, domain.ErrProviderNotEligible
	}

	return s.transition(ctx, id, domain.StatusAssigned, func(b *domain.Booking) {
		b.ProviderID = &pid
	})
}

func (s *Service) Start(ctx context.Context, id string) (*domain.Response, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeProvider(ctx, booking); err != nil {
		return nil, err
	}
	return s.transition(ctx, id, domain.StatusInProgress, nil)
}

func (s *Service) Complete(ctx context.Context, id string) (*domain.Response, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeProvider(ctx, booking); err != nil {
		return nil, err
	}
	return s.transition(ctx, id, domain.StatusCompleted, nil)
}

func (s *Service) Cancel(ctx context.Context, id string) (*domain.Response, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeRead(ctx, booking); err != nil {
		return nil, err
	}
	return s.transition(ctx, id, domain.StatusCancelled, nil)
}

func (s *Service) MarkPaid(ctx context.Context, id string) (*domain.Response, error) {
	return s.transition(ctx, id, domain.StatusPaid, nil)
}

func (s *Service) list(ctx context.Context, filter domain.ListFilter, req domain.ListRequest) (domain.ListResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	bookings, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(bookings, pageSize, func(b *domain.Booking) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        b.ID.String(),
			CreatedAt: b.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(bookings) > pageSize {
		bookings = bookings[:pageSize]
	}

	resp := make([]domain.Response, 0, len(bookings))
	for _, booking := range bookings {
		item, err := s.toResponse(booking)
		if err != nil {
			return domain.ListResponse{}, err
		}
		resp = append(resp, *item)
	}

	out := domain.ListResponse{Bookings: resp}
	if pageInfo != nil {
		out.PageInfo = *pageInfo
	}
	return out, nil
}

func (s *Service) transition(ctx context.Context, id string, next domain.Status, mutate func(*domain.Booking)) (*domain.Response, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	previous := booking.Status
	booking.Status = next
	if mutate != nil {
		mutate(booking)
	}
	booking.UpdatedAt = s.clock.Now(ctx)

	if err := s.repo.Update(ctx, s.db, booking); err != nil {
		return nil, err
	}

	s.log.Info("booking status changed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(next)))

	return s.toResponse(booking)
}

func (s *Service) find(ctx context.Context, id string) (*domain.Booking, error) {
	bookingID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	booking, err := s.repo.FindByID(ctx, s.db, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrNotFound
	}
	return booking, nil
}

func (s *Service) toResponse(booking *domain.Booking) (*domain.Response, error) {
	var breakdown pricing.Breakdown
	if err := json.Unmarshal(booking.PriceBreakdown, &breakdown); err != nil {
		return nil, err
	}

	resp := &domain.Response{
		ID:                 booking.ID.String(),
		FamilyID:           booking.FamilyID.String(),
		ServiceID:          booking.ServiceID.String(),
		Status:             booking.Status,
		ScheduledAt:        booking.ScheduledAt,
		DurationHours:      booking.DurationHours,
		Weekend:            booking.Weekend,
		SameDay:            booking.SameDay,
		AddressText:        booking.AddressText,
		Notes:              booking.Notes,
		AccessibilityNeeds: []string(booking.AccessibilityNeeds),
		PriceBreakdown:     breakdown,
		TotalAmountCents:   booking.TotalAmountCents,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}
	if booking.ProviderID != nil {
		resp.ProviderID = booking.ProviderID.String()
	}
	return resp, nil
}

func authorizeRead(ctx context.Context, booking *domain.Booking) error {
	actor, ok := actorcontext.FromContext(ctx)
	if !ok {
		return domain.ErrMissingActor
	}
	if actor.Role == string(accountdomain.RoleAdmin) {
		return nil
	}
	if booking.FamilyID == actor.UserID {
		return nil
	}
	if booking.ProviderID != nil && *booking.ProviderID == actor.UserID {
		return nil
	}
	return domain.ErrForbidden
}

func authorizeProvider(ctx context.Context, booking *domain.Booking) error {
	actor, ok := actorcontext.FromContext(ctx)
	if !ok {
		return domain.ErrMissingActor
	}
	if actor.Role == string(accountdomain.RoleAdmin) {
		return nil
	}
	if booking.ProviderID == nil || *booking.ProviderID != actor.UserID {
		return domain.ErrForbidden
	}
	return nil
}

func isWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
