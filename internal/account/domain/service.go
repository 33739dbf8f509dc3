package domain

import (
	"context"
	"errors"
	"time"

	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Approve(ctx context.Context, id string) (*Response, error)
	SetBanned(ctx context.Context, id string, banned bool) (*Response, error)
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
	PhoneE164 string `json:"phone_e164"`
}

type ListRequest struct {
	Role      string `form:"role"`
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

type ListResponse struct {
	PageInfo pagination.PageInfo `json:"page_info"`
	Users    []Response          `json:"users"`
}

type Response struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	IsApproved bool      `json:"is_approved"`
	IsBanned   bool      `json:"is_banned"`
	PhoneE164  string    `json:"phone_e164,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var (
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrInvalidRole     = errors.New("invalid_role")
	ErrInvalidID       = errors.New("invalid_id")
	ErrEmailTaken      = errors.New("email_taken")
	ErrNotFound        = errors.New("not_found")
)
