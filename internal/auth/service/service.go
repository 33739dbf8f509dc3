package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/handyheartslabs/handyhearts/internal/account/domain"
	"github.com/handyheartslabs/handyhearts/internal/auth/domain"
	"github.com/handyheartslabs/handyhearts/internal/clock"
	"github.com/handyheartslabs/handyhearts/internal/config"
	redisclient "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = time.Minute
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Cfg      config.Config
	Redis    *redisclient.Client `optional:"true"`
	Accounts accountdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	ttl      time.Duration
	redis    *redisclient.Client
	accounts accountdomain.Repository
}

func New(p Params) domain.Service {
	ttl := p.Cfg.Session.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("auth.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		ttl:      ttl,
		redis:    p.Redis,
		accounts: p.Accounts,
	}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.checkLoginRate(ctx, email); err != nil {
		return nil, err
	}

	user, err := s.accounts.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Burn a comparison anyway so lookup misses cost the same.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$invalidinvalidinvalidinvalidinvalidinvalid"), []byte(req.Password))
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	session := &domain.Session{
		ID:        s.genID.Generate(),
		UserID:    user.ID,
		TokenHash: domain.HashToken(token),
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}

	s.log.Info("login", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User: accountdomain.Response{
			ID:         user.ID.String(),
			Email:      user.Email,
			Name:       user.Name,
			Role:       user.Role,
			IsApproved: user.IsApproved,
			IsBanned:   user.IsBanned,
			PhoneE164:  user.PhoneE164,
			CreatedAt:  user.CreatedAt,
			UpdatedAt:  user.UpdatedAt,
		},
	}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrUnauthorized
	}
	return s.db.WithContext(ctx).
		Delete(&domain.Session{}, "token_hash = ?", domain.HashToken(token)).Error
}

func (s *Service) Resolve(ctx context.Context, token string) (*accountdomain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	hash := domain.HashToken(token)

	var session domain.Session
	err := s.db.WithContext(ctx).First(&session, "token_hash = ?", hash).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(session.TokenHash), []byte(hash)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	if s.clock.Now(ctx).After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	user, err := s.accounts.FindByID(ctx, s.db, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// checkLoginRate throttles repeated login attempts per email. Redis is
// optional; without it (tests, single-node dev) logins are not limited.
func (s *Service) checkLoginRate(ctx context.Context, email string) error {
	if s.redis == nil {
		return nil
	}

	key := fmt.Sprintf("login_attempts:%s", email)
	count, err := s.redis.Incr(ctx, key).Result()
	if err != nil {
		s.log.Warn("login rate limiter unavailable", zap.Error(err))
		return nil
	}
	if count == 1 {
		s.redis.Expire(ctx, key, loginAttemptWindow)
	}
	if count > loginAttemptLimit {
		return domain.ErrRateLimited
	}
	return nil
}

func newToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return "hh_" + hex.EncodeToString(raw), nil
}
