package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/handyheartslabs/handyhearts/internal/catalog/domain"
	"github.com/handyheartslabs/handyhearts/internal/clock"
	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.CatalogService {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.BaseRateCents < 0 {
		return nil, domain.ErrInvalidRate
	}
	if req.MinHours <= 0 {
		return nil, domain.ErrInvalidMinHours
	}

	now := s.clock.Now(ctx)
	service := &domain.Service{
		ID:            s.genID.Generate(),
		Code:          slug.Make(name),
		Name:          name,
		Description:   strings.TrimSpace(req.Description),
		BaseRateCents: req.BaseRateCents,
		MinHours:      req.MinHours,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, service); err != nil {
		return nil, err
	}

	s.log.Info("service created",
		zap.String("service_id", service.ID.String()),
		zap.String("code", service.Code))

	return toResponse(service), nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	service, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		service.Name = name
		service.Code = slug.Make(name)
	}
	if req.Description != nil {
		service.Description = strings.TrimSpace(*req.Description)
	}
	if req.BaseRateCents != nil {
		if *req.BaseRateCents < 0 {
			return nil, domain.ErrInvalidRate
		}
		service.BaseRateCents = *req.BaseRateCents
	}
	if req.MinHours != nil {
		if *req.MinHours <= 0 {
			return nil, domain.ErrInvalidMinHours
		}
		service.MinHours = *req.MinHours
	}
	if req.Active != nil {
		service.Active = *req.Active
	}
	service.UpdatedAt = s.clock.Now(ctx)

	if err := s.repo.Update(ctx, s.db, service); err != nil {
		return nil, err
	}
	return toResponse(service), nil
}

func (s *Service) Archive(ctx context.Context, id string) (*domain.Response, error) {
	service, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	service.Active = false
	service.UpdatedAt = s.clock.Now(ctx)

	if err := s.repo.Update(ctx, s.db, service); err != nil {
		return nil, err
	}
	return toResponse(service), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	service, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(service), nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*domain.Response, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrNotFound
	}

	service, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(service), nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	services, err := s.repo.List(ctx, s.db, req.ActiveOnly, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(services, pageSize, func(item *domain.Service) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        item.ID.String(),
			CreatedAt: item.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(services) > pageSize {
		services = services[:pageSize]
	}

	resp := make([]domain.Response, 0, len(services))
	for _, service := range services {
		resp = append(resp, *toResponse(service))
	}

	out := domain.ListResponse{Services: resp}
	if pageInfo != nil {
		out.PageInfo = *pageInfo
	}
	return out, nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.Service, error) {
	serviceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	service, err := s.repo.FindByID(ctx, s.db, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, domain.ErrNotFound
	}
	return service, nil
}

func toResponse(service *domain.Service) *domain.Response {
	return &domain.Response{
		ID:            service.ID.String(),
		Code:          service.Code,
		Name:          service.Name,
		Description:   service.Description,
		BaseRateCents: service.BaseRateCents,
		MinHours:      service.MinHours,
		Active:        service.Active,
		CreatedAt:     service.CreatedAt,
		UpdatedAt:     service.UpdatedAt,
	}
}
