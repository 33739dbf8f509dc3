package domain

import (
	"context"
	"errors"
	"time"

	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
)

type CatalogService interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Archive(ctx context.Context, id string) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	GetByCode(ctx context.Context, code string) (*Response, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

type CreateRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	BaseRateCents int64   `json:"base_rate_cents"`
	MinHours      float64 `json:"min_hours"`
}

type UpdateRequest struct {
	ID            string   `json:"-"`
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	BaseRateCents *int64   `json:"base_rate_cents,omitempty"`
	MinHours      *float64 `json:"min_hours,omitempty"`
	Active        *bool    `json:"active,omitempty"`
}

type ListRequest struct {
	ActiveOnly bool   `form:"active_only"`
	PageToken  string `form:"page_token"`
	PageSize   int    `form:"page_size"`
}

type ListResponse struct {
	PageInfo pagination.PageInfo `json:"page_info"`
	Services []Response          `json:"services"`
}

type Response struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	BaseRateCents int64     `json:"base_rate_cents"`
	MinHours      float64   `json:"min_hours"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidRate     = errors.New("invalid_rate")
	ErrInvalidMinHours = errors.New("invalid_min_hours")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
	ErrInactive        = errors.New("service_inactive")
)
