package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/handyheartslabs/handyhearts/internal/account/domain"
	"github.com/handyheartslabs/handyhearts/internal/clock"
	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
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

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("account.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Response, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if len(req.Password) < 8 {
		return nil, domain.ErrInvalidPassword
	}
	// Admin accounts are seeded or promoted, never self-registered.
	if req.Role != domain.RoleFamily && req.Role != domain.RoleProvider {
		return nil, domain.ErrInvalidRole
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	user := &domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         req.Role,
		// Families are usable immediately; providers wait for vetting.
		IsApproved: req.Role == domain.RoleFamily,
		PhoneE164:  strings.TrimSpace(req.PhoneE164),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, s.db, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return toResponse(user), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	user, err := s.repo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(user), nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	users, err := s.repo.List(ctx, s.db, strings.TrimSpace(req.Role), pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(users, pageSize, func(u *domain.User) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        u.ID.String(),
			CreatedAt: u.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(users) > pageSize {
		users = users[:pageSize]
	}

	resp := make([]domain.Response, 0, len(users))
	for _, user := range users {
		resp = append(resp, *toResponse(user))
	}

	out := domain.ListResponse{Users: resp}
	if pageInfo != nil {
		out.PageInfo = *pageInfo
	}
	return out, nil
}

func (s *Service) Approve(ctx context.Context, id string) (*domain.Response, error) {
	return s.patch(ctx, id, func(user *domain.User) {
		user.IsApproved = true
	})
}

func (s *Service) SetBanned(ctx context.Context, id string, banned bool) (*domain.Response, error) {
	return s.patch(ctx, id, func(user *domain.User) {
		user.IsBanned = banned
	})
}

func (s *Service) patch(ctx context.Context, id string, mutate func(*domain.User)) (*domain.Response, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	user, err := s.repo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	mutate(user)
	user.UpdatedAt = s.clock.Now(ctx)

	if err := s.repo.Update(ctx, s.db, user); err != nil {
		return nil, err
	}
	return toResponse(user), nil
}

func toResponse(user *domain.User) *domain.Response {
	return &domain.Response{
		ID:         user.ID.String(),
		Email:      user.Email,
		Name:       user.Name,
		Role:       user.Role,
		IsApproved: user.IsApproved,
		IsBanned:   user.IsBanned,
		PhoneE164:  user.PhoneE164,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}
