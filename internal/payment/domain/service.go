package domain

import (
	"context"
	"errors"
	"net/http"

	"github.com/handyheartslabs/handyhearts/internal/pricing"
)

type Service interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*IntentResponse, error)
}

type WebhookService interface {
	IngestWebhook(ctx context.Context, payload []byte, headers http.Header) error
}

type CreateIntentRequest struct {
	BookingID string `json:"booking_id"`
}

type IntentResponse struct {
	IntentID       string            `json:"intent_id"`
	ClientSecret   string            `json:"client_secret"`
	AmountCents    int64             `json:"amount_cents"`
	Currency       string            `json:"currency"`
	PriceBreakdown pricing.Breakdown `json:"price_breakdown"`
}

var (
	ErrInvalidSignature  = errors.New("invalid_signature")
	ErrInvalidPayload    = errors.New("invalid_payload")
	ErrInvalidEvent      = errors.New("invalid_event")
	ErrEventIgnored      = errors.New("event_ignored")
	ErrMissingBooking    = errors.New("missing_booking_metadata")
	ErrInvalidID         = errors.New("invalid_id")
	ErrBookingNotFound   = errors.New("booking_not_found")
	ErrBookingNotPayable = errors.New("booking_not_payable")
	ErrForbidden         = errors.New("forbidden")
	ErrMissingActor      = errors.New("missing_actor")
)
