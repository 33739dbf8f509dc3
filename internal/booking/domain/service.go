package domain

import (
	"context"
	"errors"
	"time"

	"github.com/handyheartslabs/handyhearts/internal/pricing"
	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	ListByFamily(ctx context.Context, req ListRequest) (ListResponse, error)
	ListByProvider(ctx context.Context, req ListRequest) (ListResponse, error)
	ListAll(ctx context.Context, req ListRequest) (ListResponse, error)

	Assign(ctx context.Context, id, providerID string) (*Response, error)
	Start(ctx context.Context, id string) (*Response, error)
	Complete(ctx context.Context, id string) (*Response, error)
	Cancel(ctx context.Context, id string) (*Response, error)

	// MarkPaid is driven by the payment webhook, never by clients.
	MarkPaid(ctx context.Context, id string) (*Response, error)
}

type CreateRequest struct {
	ServiceID          string   `json:"service_id"`
	ScheduledAt        string   `json:"scheduled_at"` // RFC 3339
	DurationHours      float64  `json:"duration_hours"`
	AddressText        string   `json:"address_text"`
	Notes              string   `json:"notes"`
	AccessibilityNeeds []string `json:"accessibility_needs"`
}

type ListRequest struct {
	Status    string `form:"status"`
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

type ListResponse struct {
	PageInfo pagination.PageInfo `json:"page_info"`
	Bookings []Response          `json:"bookings"`
}

type Response struct {
	ID                 string            `json:"id"`
	FamilyID           string            `json:"family_id"`
	ProviderID         string            `json:"provider_id,omitempty"`
	ServiceID          string            `json:"service_id"`
	Status             Status            `json:"status"`
	ScheduledAt        time.Time         `json:"scheduled_at"`
	DurationHours      float64           `json:"duration_hours"`
	Weekend            bool              `json:"weekend"`
	SameDay            bool              `json:"same_day"`
	AddressText        string            `json:"address_text"`
	Notes              string            `json:"notes,omitempty"`
	AccessibilityNeeds []string          `json:"accessibility_needs,omitempty"`
	PriceBreakdown     pricing.Breakdown `json:"price_breakdown"`
	TotalAmountCents   int64             `json:"total_amount_cents"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

var (
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidService      = errors.New("invalid_service")
	ErrInvalidSchedule     = errors.New("invalid_schedule")
	ErrInvalidDuration     = errors.New("invalid_duration")
	ErrInvalidAddress      = errors.New("invalid_address")
	ErrInvalidProvider     = errors.New("invalid_provider")
	ErrProviderNotEligible = errors.New("provider_not_eligible")
	ErrNotFound            = errors.New("not_found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidTransition   = errors.New("invalid_status_transition")
	ErrMissingActor        = errors.New("missing_actor")
)
