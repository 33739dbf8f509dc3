package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/handyheartslabs/handyhearts/internal/account/domain"
	"github.com/handyheartslabs/handyhearts/internal/actorcontext"
	"github.com/handyheartslabs/handyhearts/internal/clock"
	"github.com/handyheartslabs/handyhearts/internal/inquiry/domain"
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
	Accounts accountdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	accounts accountdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("inquiry.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		accounts: p.Accounts,
	}
}

func (s *Service) Submit(ctx context.Context, req domain.SubmitRequest) (*domain.Response, error) {
	actor, ok := actorcontext.FromContext(ctx)
	if !ok {
		return nil, domain.ErrMissingActor
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, domain.ErrInvalidName
	}
	phone := strings.TrimSpace(req.PhoneE164)
	if phone == "" || !strings.HasPrefix(phone, "+") {
		return nil, domain.ErrInvalidPhone
	}
	serviceRequested := strings.TrimSpace(req.ServiceRequested)
	if serviceRequested == "" {
		return nil, domain.ErrInvalidService
	}

	var preferredDate *time.Time
	if raw := strings.TrimSpace(req.PreferredDate); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		utc := parsed.UTC()
		preferredDate = &utc
	}

	now := s.clock.Now(ctx)
	submission := &domain.Submission{
		ID:               s.genID.Generate(),
		UserID:           actor.UserID,
		RoleSnapshot:     actor.Role,
		FullName:         fullName,
		PhoneE164:        phone,
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		ServiceRequested: serviceRequested,
		PreferredDate:    preferredDate,
		Notes:            strings.TrimSpace(req.Notes),
		Status:           domain.StatusNew,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, s.db, submission); err != nil {
		return nil, err
	}

	s.log.Info("inquiry submitted",
		zap.String("inquiry_id", submission.ID.String()),
		zap.String("service", serviceRequested))

	return toResponse(submission), nil
}

func (s *Service) ListMine(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	actor, ok := actorcontext.FromContext(ctx)
	if !ok {
		return domain.ListResponse{}, domain.ErrMissingActor
	}
	return s.list(ctx, domain.ListFilter{UserID: actor.UserID, Status: req.Status}, req)
}

func (s *Service) ListAssigned(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	actor, ok := actorcontext.FromContext(ctx)
	if !ok {
		return domain.ListResponse{}, domain.ErrMissingActor
	}
	return s.list(ctx, domain.ListFilter{ProviderID: actor.UserID, Status: req.Status}, req)
}

func (s *Service) ListAll(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	return s.list(ctx, domain.ListFilter{Status: req.Status}, req)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Response, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.patch(ctx, id, func(submission *domain.Submission) {
		submission.Status = status
	})
}

func (s *Service) AssignProvider(ctx context.Context, id, providerID string) (*domain.Response, error) {
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

	return s.patch(ctx, id, func(submission *domain.Submission) {
		submission.AssignedProviderUserID = &pid
		submission.Status = domain.StatusAssigned
	})
}

func (s *Service) list(ctx context.Context, filter domain.ListFilter, req domain.ListRequest) (domain.ListResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	submissions, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(submissions, pageSize, func(item *domain.Submission) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        item.ID.String(),
			CreatedAt: item.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(submissions) > pageSize {
		submissions = submissions[:pageSize]
	}

	resp := make([]domain.Response, 0, len(submissions))
	for _, submission := range submissions {
		resp = append(resp, *toResponse(submission))
	}

	out := domain.ListResponse{Inquiries: resp}
	if pageInfo != nil {
		out.PageInfo = *pageInfo
	}
	return out, nil
}

func (s *Service) patch(ctx context.Context, id string, mutate func(*domain.Submission)) (*domain.Response, error) {
	inquiryID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	submission, err := s.repo.FindByID(ctx, s.db, inquiryID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, domain.ErrNotFound
	}

	mutate(submission)
	submission.UpdatedAt = s.clock.Now(ctx)

	if err := s.repo.Update(ctx, s.db, submission); err != nil {
		return nil, err
	}
	return toResponse(submission), nil
}

func toResponse(submission *domain.Submission) *domain.Response {
	resp := &domain.Response{
		ID:               submission.ID.String(),
		UserID:           submission.UserID.String(),
		RoleSnapshot:     submission.RoleSnapshot,
		FullName:         submission.FullName,
		PhoneE164:        submission.PhoneE164,
		Email:            submission.Email,
		ServiceRequested: submission.ServiceRequested,
		PreferredDate:    submission.PreferredDate,
		Notes:            submission.Notes,
		Status:           submission.Status,
		TotalPriceCents:  submission.TotalPriceCents,
		CreatedAt:        submission.CreatedAt,
		UpdatedAt:        submission.UpdatedAt,
	}
	if submission.AssignedProviderUserID != nil {
		resp.AssignedProviderUserID = submission.AssignedProviderUserID.String()
	}
	return resp
}
