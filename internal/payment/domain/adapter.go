package domain

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Adapter speaks a payment processor's API. Verify and Parse handle
// inbound webhooks; CreatePaymentIntent opens a payment for a booking.
type Adapter interface {
	CreatePaymentIntent(ctx context.Context, in IntentInput) (*ProviderIntent, error)
	Verify(ctx context.Context, payload []byte, headers http.Header) error
	Parse(ctx context.Context, payload []byte) (*PaymentEvent, error)
}

type IntentInput struct {
	AmountCents int64
	Currency    string
	Metadata    map[string]string
}

type ProviderIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

const (
	EventTypePaymentSucceeded = "payment.succeeded"
	EventTypePaymentFailed    = "payment.failed"
)

type PaymentEvent struct {
	Provider          string
	ProviderEventID   string
	ProviderPaymentID string
	Type              string
	BookingID         snowflake.ID
	AmountCents       int64
	Currency          string
	OccurredAt        time.Time
	RawPayload        []byte
}
