package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	bookingdomain "github.com/handyheartslabs/handyhearts/internal/booking/domain"
	"github.com/handyheartslabs/handyhearts/internal/payment/adapters/stripe"
	"github.com/handyheartslabs/handyhearts/internal/payment/domain"
	"github.com/handyheartslabs/handyhearts/internal/payment/repository"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testWebhookSecret = "whsec_test"

type fixedClock struct{ now time.Time }

func (c fixedClock) Now(context.Context) time.Time { return c.now }

type stubBookings struct {
	markPaidCalls []string
	markPaidErr   error
}

func (s *stubBookings) Create(context.Context, bookingdomain.CreateRequest) (*bookingdomain.Response, error) {
	return nil, nil
}
func (s *stubBookings) Get(context.Context, string) (*bookingdomain.Response, error) {
	return nil, nil
}
func (s *stubBookings) ListByFamily(context.Context, bookingdomain.ListRequest) (bookingdomain.ListResponse, error) {
	return bookingdomain.ListResponse{}, nil
}
func (s *stubBookings) ListByProvider(context.Context, bookingdomain.ListRequest) (bookingdomain.ListResponse, error) {
	return bookingdomain.ListResponse{}, nil
}
func (s *stubBookings) ListAll(context.Context, bookingdomain.ListRequest) (bookingdomain.ListResponse, error) {
	return bookingdomain.ListResponse{}, nil
}
func (s *stubBookings) Assign(context.Context, string, string) (*bookingdomain.Response, error) {
	return nil, nil
}
func (s *stubBookings) Start(context.Context, string) (*bookingdomain.Response, error) {
	return nil, nil
}
func (s *stubBookings) Complete(context.Context, string) (*bookingdomain.Response, error) {
	return nil, nil
}
func (s *stubBookings) Cancel(context.Context, string) (*bookingdomain.Response, error) {
	return nil, nil
}
func (s *stubBookings) MarkPaid(_ context.Context, id string) (*bookingdomain.Response, error) {
	s.markPaidCalls = append(s.markPaidCalls, id)
	if s.markPaidErr != nil {
		return nil, s.markPaidErr
	}
	return &bookingdomain.Response{ID: id, Status: bookingdomain.StatusPaid}, nil
}

func setupService(t *testing.T) (*Service, *stubBookings, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.IntentRecord{}, &domain.EventRecord{}))

	mini := miniredis.RunT(t)
	rdb := redisclient.NewClient(&redisclient.Options{Addr: mini.Addr()})

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	bookings := &stubBookings{}
	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    fixedClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)},
		Redis:    rdb,
		Adapter:  stripe.New("", testWebhookSecret),
		Repo:     repository.Provide(),
		Bookings: bookings,
	}).(*Service)

	return svc, bookings, db
}

func signedHeaders(payload []byte) http.Header {
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	_, _ = mac.Write([]byte(fmt.Sprintf("%s.%s", timestamp, string(payload))))
	headers := http.Header{}
	headers.Set("Stripe-Signature", fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil))))
	return headers
}

func succeededPayload(eventID, bookingID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"type": "payment_intent.succeeded",
		"created": 1700000000,
		"data": {"object": {
			"id": "pi_1",
			"amount": 12075,
			"amount_received": 12075,
			"currency": "usd",
			"metadata": {"booking_id": %q}
		}}
	}`, eventID, bookingID))
}

func TestIngestWebhookMarksBookingPaid(t *testing.T) {
	svc, bookings, db := setupService(t)

	payload := succeededPayload("evt_1", "1234567890123456789")
	require.NoError(t, svc.IngestWebhook(context.Background(), payload, signedHeaders(payload)))

	require.Len(t, bookings.markPaidCalls, 1)
	assert.Equal(t, "1234567890123456789", bookings.markPaidCalls[0])

	var events []domain.EventRecord
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, "evt_1", events[0].ProviderEventID)
	assert.Equal(t, domain.EventTypePaymentSucceeded, events[0].Type)
	assert.Equal(t, int64(12075), events[0].AmountCents)
}

func TestIngestWebhookDeduplicatesEvents(t *testing.T) {
	svc, bookings, db := setupService(t)

	payload := succeededPayload("evt_dup", "1234567890123456789")
	headers := signedHeaders(payload)

	require.NoError(t, svc.IngestWebhook(context.Background(), payload, headers))
	require.NoError(t, svc.IngestWebhook(context.Background(), payload, headers))

	assert.Len(t, bookings.markPaidCalls, 1)

	var count int64
	require.NoError(t, db.Model(&domain.EventRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIngestWebhookRetriesAfterTransientFailure(t *testing.T) {
	svc, bookings, db := setupService(t)
	bookings.markPaidErr = errors.New("connection reset by peer")

	payload := succeededPayload("evt_retry", "1234567890123456789")
	headers := signedHeaders(payload)

	require.Error(t, svc.IngestWebhook(context.Background(), payload, headers))

	// Nothing durable recorded; the provider's retry must reprocess.
	var count int64
	require.NoError(t, db.Model(&domain.EventRecord{}).Count(&count).Error)
	assert.Zero(t, count)

	bookings.markPaidErr = nil
	require.NoError(t, svc.IngestWebhook(context.Background(), payload, headers))

	assert.Len(t, bookings.markPaidCalls, 2)
	require.NoError(t, db.Model(&domain.EventRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIngestWebhookRejectsBadSignature(t *testing.T) {
	svc, bookings, _ := setupService(t)

	payload := succeededPayload("evt_bad", "1234567890123456789")
	headers := http.Header{}
	headers.Set("Stripe-Signature", "t=1700000000,v1=deadbeef")

	err := svc.IngestWebhook(context.Background(), payload, headers)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
	assert.Empty(t, bookings.markPaidCalls)
}

func TestIngestWebhookIgnoresUnhandledTypes(t *testing.T) {
	svc, bookings, db := setupService(t)

	payload := []byte(`{"id":"evt_x","type":"charge.refunded","data":{"object":{}}}`)
	require.NoError(t, svc.IngestWebhook(context.Background(), payload, signedHeaders(payload)))

	assert.Empty(t, bookings.markPaidCalls)
	var count int64
	require.NoError(t, db.Model(&domain.EventRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestIngestWebhookToleratesReplayAfterPaid(t *testing.T) {
	svc, bookings, _ := setupService(t)
	bookings.markPaidErr = bookingdomain.ErrInvalidTransition

	payload := succeededPayload("evt_replay", "1234567890123456789")
	require.NoError(t, svc.IngestWebhook(context.Background(), payload, signedHeaders(payload)))
}

func TestIngestWebhookRecordsFailedPayment(t *testing.T) {
	svc, bookings, db := setupService(t)

	require.NoError(t, db.Create(&domain.IntentRecord{
		ID:               snowflake.ID(1),
		BookingID:        snowflake.ID(2),
		Provider:         "stripe",
		ProviderIntentID: "pi_1",
		AmountCents:      9500,
		Currency:         "usd",
		Status:           domain.IntentStatusPending,
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}).Error)

	payload := []byte(`{
		"id": "evt_fail",
		"type": "payment_intent.payment_failed",
		"data": {"object": {
			"id": "pi_1",
			"amount": 9500,
			"currency": "usd",
			"metadata": {"booking_id": "1234567890123456789"}
		}}
	}`)
	require.NoError(t, svc.IngestWebhook(context.Background(), payload, signedHeaders(payload)))

	assert.Empty(t, bookings.markPaidCalls)

	var intent domain.IntentRecord
	require.NoError(t, db.First(&intent, "provider_intent_id = ?", "pi_1").Error)
	assert.Equal(t, domain.IntentStatusFailed, intent.Status)
}
