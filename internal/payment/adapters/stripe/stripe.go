package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/handyheartslabs/handyhearts/internal/payment/domain"
)

const (
	defaultBaseURL            = "https://api.stripe.com"
	defaultSignatureTolerance = 5 * time.Minute
)

type Adapter struct {
	apiKey             string
	webhookSecret      string
	baseURL            string
	httpClient         *http.Client
	signatureTolerance time.Duration
	now                func() time.Time
}

func New(apiKey, webhookSecret string) *Adapter {
	return &Adapter{
		apiKey:             strings.TrimSpace(apiKey),
		webhookSecret:      strings.TrimSpace(webhookSecret),
		baseURL:            defaultBaseURL,
		httpClient:         &http.Client{Timeout: 10 * time.Second},
		signatureTolerance: defaultSignatureTolerance,
		now:                time.Now,
	}
}

// WithSignatureTolerance overrides the webhook timestamp tolerance.
// Non-positive values keep the default.
func (a *Adapter) WithSignatureTolerance(d time.Duration) *Adapter {
	if d > 0 {
		a.signatureTolerance = d
	}
	return a
}

func (a *Adapter) CreatePaymentIntent(ctx context.Context, in domain.IntentInput) (*domain.ProviderIntent, error) {
	if a.apiKey == "" {
		return nil, errors.New("stripe api key not configured")
	}

	data := url.Values{}
	data.Set("amount", strconv.FormatInt(in.AmountCents, 10))
	data.Set("currency", strings.ToLower(in.Currency))
	data.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range in.Metadata {
		data.Set("metadata["+k+"]", v)
	}

	endpoint := a.baseURL + "/v1/payment_intents"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("stripe api error: %d body: %s", resp.StatusCode, string(bodyBytes))
	}

	var intent struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
		Status       string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, err
	}

	return &domain.ProviderIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       intent.Status,
	}, nil
}

func (a *Adapter) Verify(ctx context.Context, payload []byte, headers http.Header) error {
	sigHeader := strings.TrimSpace(headers.Get("Stripe-Signature"))
	if sigHeader == "" {
		return domain.ErrInvalidSignature
	}

	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return domain.ErrInvalidSignature
	}

	// Reject replays outside the tolerance window even when the
	// signature itself checks out.
	signedAt, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return domain.ErrInvalidSignature
	}
	if drift := a.now().Sub(time.Unix(signedAt, 0)); drift > a.signatureTolerance || drift < -a.signatureTolerance {
		return domain.ErrInvalidSignature
	}

	signedPayload := fmt.Sprintf("%s.%s", timestamp, string(payload))
	mac := hmac.New(sha256.New, []byte(a.webhookSecret))
	_, _ = mac.Write([]byte(signedPayload))
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, signature := range signatures {
		if hmac.Equal([]byte(signature), []byte(expected)) {
			return nil
		}
	}

	return domain.ErrInvalidSignature
}

func (a *Adapter) Parse(ctx context.Context, payload []byte) (*domain.PaymentEvent, error) {
	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, domain.ErrInvalidPayload
	}
	if strings.TrimSpace(event.ID) == "" {
		return nil, domain.ErrInvalidEvent
	}

	switch strings.TrimSpace(event.Type) {
	case "payment_intent.succeeded":
		return a.parsePaymentIntent(event, payload, domain.EventTypePaymentSucceeded)
	case "payment_intent.payment_failed":
		return a.parsePaymentIntent(event, payload, domain.EventTypePaymentFailed)
	default:
		return nil, domain.ErrEventIgnored
	}
}

type stripeEvent struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Created int64           `json:"created"`
	Data    stripeEventData `json:"data"`
}

type stripeEventData struct {
	Object json.RawMessage `json:"object"`
}

type stripePaymentIntent struct {
	ID             string         `json:"id"`
	Amount         int64          `json:"amount"`
	AmountReceived int64          `json:"amount_received"`
	Currency       string         `json:"currency"`
	Created        int64          `json:"created"`
	Metadata       map[string]any `json:"metadata"`
}

func (a *Adapter) parsePaymentIntent(event stripeEvent, payload []byte, eventType string) (*domain.PaymentEvent, error) {
	var intent stripePaymentIntent
	if err := json.Unmarshal(event.Data.Object, &intent); err != nil {
		return nil, domain.ErrInvalidPayload
	}

	amount := intent.AmountReceived
	if amount <= 0 {
		amount = intent.Amount
	}

	bookingID, err := parseBookingID(intent.Metadata)
	if err != nil {
		return nil, err
	}

	return &domain.PaymentEvent{
		Provider:          "stripe",
		ProviderEventID:   event.ID,
		ProviderPaymentID: intent.ID,
		Type:              eventType,
		BookingID:         bookingID,
		AmountCents:       amount,
		Currency:          strings.ToUpper(strings.TrimSpace(intent.Currency)),
		OccurredAt:        timestamp(intent.Created, event.Created),
		RawPayload:        payload,
	}, nil
}

func parseSignatureHeader(header string) (string, []string, error) {
	parts := strings.Split(header, ",")
	var timestamp string
	signatures := []string{}
	for _, part := range parts {
		piece := strings.TrimSpace(part)
		if piece == "" {
			continue
		}
		keyValue := strings.SplitN(piece, "=", 2)
		if len(keyValue) != 2 {
			continue
		}
		key := strings.TrimSpace(keyValue[0])
		value := strings.TrimSpace(keyValue[1])
		if key == "t" {
			timestamp = value
		}
		if key == "v1" {
			signatures = append(signatures, value)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return "", nil, errors.New("invalid_signature")
	}
	return timestamp, signatures, nil
}

func timestamp(primary, fallback int64) time.Time {
	value := primary
	if value == 0 {
		value = fallback
	}
	if value == 0 {
		return time.Now().UTC()
	}
	return time.Unix(value, 0).UTC()
}

func parseBookingID(metadata map[string]any) (snowflake.ID, error) {
	raw := readMetadataValue(metadata, "booking_id")
	if raw == "" {
		return 0, domain.ErrMissingBooking
	}
	bookingID, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, domain.ErrMissingBooking
	}
	return bookingID, nil
}

func readMetadataValue(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	value, ok := metadata[key]
	if !ok {
		return ""
	}
	switch cast := value.(type) {
	case string:
		return strings.TrimSpace(cast)
	case float64:
		if cast == 0 {
			return ""
		}
		return strconv.FormatInt(int64(cast), 10)
	case json.Number:
		return cast.String()
	}
	return ""
}
