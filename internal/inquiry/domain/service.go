package domain

import (
	"context"
	"errors"
	"time"

	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
)

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Response, error)
	ListMine(ctx context.Context, req ListRequest) (ListResponse, error)
	ListAssigned(ctx context.Context, req ListRequest) (ListResponse, error)
	ListAll(ctx context.Context, req ListRequest) (ListResponse, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Response, error)
	AssignProvider(ctx context.Context, id, providerID string) (*Response, error)
}

type SubmitRequest struct {
	FullName         string `json:"full_name"`
	PhoneE164        string `json:"phone_e164"`
	Email            string `json:"email"`
	ServiceRequested string `json:"service_requested"`
	PreferredDate    string `json:"preferred_date,omitempty"` // RFC 3339
	Notes            string `json:"notes"`
}

type ListRequest struct {
	Status    string `form:"status"`
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

type ListResponse struct {
	PageInfo  pagination.PageInfo `json:"page_info"`
	Inquiries []Response          `json:"inquiries"`
}

type Response struct {
	ID                     string     `json:"id"`
	UserID                 string     `json:"user_id"`
	RoleSnapshot           string     `json:"role_snapshot"`
	FullName               string     `json:"full_name"`
	PhoneE164              string     `json:"phone_e164"`
	Email                  string     `json:"email"`
	ServiceRequested       string     `json:"service_requested"`
	PreferredDate          *time.Time `json:"preferred_date,omitempty"`
	Notes                  string     `json:"notes,omitempty"`
	Status                 Status     `json:"status"`
	AssignedProviderUserID string     `json:"assigned_provider_user_id,omitempty"`
	TotalPriceCents        *int64     `json:"total_price_cents,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

var (
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidPhone        = errors.New("invalid_phone")
	ErrInvalidService      = errors.New("invalid_service")
	ErrInvalidDate         = errors.New("invalid_date")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidProvider     = errors.New("invalid_provider")
	ErrProviderNotEligible = errors.New("provider_not_eligible")
	ErrNotFound            = errors.New("not_found")
	ErrMissingActor        = errors.New("missing_actor")
)
