package receipt

import (
	"context"
	"testing"
	"time"

	bookingdomain "github.com/handyheartslabs/handyhearts/internal/booking/domain"
	"github.com/handyheartslabs/handyhearts/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBookings struct {
	bookingdomain.Service

	booking *bookingdomain.Response
	err     error
}

func (s *stubBookings) Get(context.Context, string) (*bookingdomain.Response, error) {
	return s.booking, s.err
}

func testBooking(status bookingdomain.Status) *bookingdomain.Response {
	return &bookingdomain.Response{
		ID:          "1234567890123456789",
		Status:      status,
		ScheduledAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		AddressText: "12 Maple Street",
		PriceBreakdown: pricing.Breakdown{
			Items: []pricing.LineItem{
				{Label: "Companion Care (3h @ $50.00/hr)", AmountCents: 15000},
				{Label: "Weekend surcharge (15%)", AmountCents: 2250},
			},
			TotalCents: 17250,
		},
		TotalAmountCents: 17250,
	}
}

func TestRenderPaidBooking(t *testing.T) {
	svc := New(Params{
		Log:      zap.NewNop(),
		Bookings: &stubBookings{booking: testBooking(bookingdomain.StatusPaid)},
	})

	pdf, err := svc.Render(context.Background(), "1234567890123456789")
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderCompletedBooking(t *testing.T) {
	svc := New(Params{
		Log:      zap.NewNop(),
		Bookings: &stubBookings{booking: testBooking(bookingdomain.StatusCompleted)},
	})

	_, err := svc.Render(context.Background(), "1234567890123456789")
	assert.NoError(t, err)
}

func TestRenderRejectsUnpaidBooking(t *testing.T) {
	svc := New(Params{
		Log:      zap.NewNop(),
		Bookings: &stubBookings{booking: testBooking(bookingdomain.StatusPendingPayment)},
	})

	_, err := svc.Render(context.Background(), "1234567890123456789")
	assert.ErrorIs(t, err, ErrNotPaid)
}

func TestRenderPropagatesLookupErrors(t *testing.T) {
	svc := New(Params{
		Log:      zap.NewNop(),
		Bookings: &stubBookings{err: bookingdomain.ErrNotFound},
	})

	_, err := svc.Render(context.Background(), "unknown")
	assert.ErrorIs(t, err, bookingdomain.ErrNotFound)
}
