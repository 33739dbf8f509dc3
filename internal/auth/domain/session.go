package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/handyheartslabs/handyhearts/internal/account/domain"
)

// Session is a server-side login session. Only the SHA-256 of the opaque
// bearer token is stored; the cleartext exists once, in the login reply.
type Session struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    snowflake.ID `gorm:"not null;index"`
	TokenHash string       `gorm:"type:text;not null;uniqueIndex"`
	ExpiresAt time.Time    `gorm:"not null"`
	CreatedAt time.Time    `gorm:"not null"`
}

func (Session) TableName() string { return "sessions" }

// HashToken derives the stored lookup key for a bearer token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string                 `json:"token"`
	ExpiresAt time.Time              `json:"expires_at"`
	User      accountdomain.Response `json:"user"`
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	// Resolve maps a bearer token to its live user record. Banned users
	// resolve successfully; the caller decides how to surface the ban.
	Resolve(ctx context.Context, token string) (*accountdomain.User, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrSessionExpired     = errors.New("session_expired")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrRateLimited        = errors.New("rate_limited")
)
