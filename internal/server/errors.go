package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/handyheartslabs/handyhearts/internal/account/domain"
	authdomain "github.com/handyheartslabs/handyhearts/internal/auth/domain"
	bookingdomain "github.com/handyheartslabs/handyhearts/internal/booking/domain"
	catalogdomain "github.com/handyheartslabs/handyhearts/internal/catalog/domain"
	inquirydomain "github.com/handyheartslabs/handyhearts/internal/inquiry/domain"
	monitoringdomain "github.com/handyheartslabs/handyhearts/internal/monitoring/domain"
	paymentdomain "github.com/handyheartslabs/handyhearts/internal/payment/domain"
	"github.com/handyheartslabs/handyhearts/internal/receipt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrRateLimited  = errors.New("rate_limited")
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Code }

func invalidRequestError() error {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

func newValidationError(field, code, message string) error {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// AbortWithError maps sentinel errors from the service layer onto HTTP
// responses. Unknown errors become an opaque 500.
func AbortWithError(c *gin.Context, err error) {
	var api *apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.Status, gin.H{"error": api})
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, gin.H{"error": gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		}})
		return
	}

	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{
		"code":    err.Error(),
		"message": err.Error(),
	}})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrSessionExpired):
		return http.StatusUnauthorized

	case errors.Is(err, ErrForbidden),
		errors.Is(err, bookingdomain.ErrForbidden),
		errors.Is(err, paymentdomain.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, ErrRateLimited),
		errors.Is(err, authdomain.ErrRateLimited):
		return http.StatusTooManyRequests

	case errors.Is(err, accountdomain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, bookingdomain.ErrNotFound),
		errors.Is(err, inquirydomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrBookingNotFound):
		return http.StatusNotFound

	case errors.Is(err, accountdomain.ErrEmailTaken):
		return http.StatusConflict

	case errors.Is(err, bookingdomain.ErrInvalidTransition),
		errors.Is(err, paymentdomain.ErrBookingNotPayable),
		errors.Is(err, receipt.ErrNotPaid),
		errors.Is(err, catalogdomain.ErrInactive):
		return http.StatusConflict

	case errors.Is(err, paymentdomain.ErrInvalidSignature):
		return http.StatusBadRequest

	case isValidationError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func isValidationError(err error) bool {
	validation := []error{
		accountdomain.ErrInvalidEmail,
		accountdomain.ErrInvalidName,
		accountdomain.ErrInvalidPassword,
		accountdomain.ErrInvalidRole,
		accountdomain.ErrInvalidID,
		catalogdomain.ErrInvalidName,
		catalogdomain.ErrInvalidRate,
		catalogdomain.ErrInvalidMinHours,
		catalogdomain.ErrInvalidID,
		bookingdomain.ErrInvalidID,
		bookingdomain.ErrInvalidService,
		bookingdomain.ErrInvalidSchedule,
		bookingdomain.ErrInvalidDuration,
		bookingdomain.ErrInvalidAddress,
		bookingdomain.ErrInvalidProvider,
		bookingdomain.ErrProviderNotEligible,
		inquirydomain.ErrInvalidName,
		inquirydomain.ErrInvalidPhone,
		inquirydomain.ErrInvalidService,
		inquirydomain.ErrInvalidDate,
		inquirydomain.ErrInvalidStatus,
		inquirydomain.ErrInvalidID,
		inquirydomain.ErrInvalidProvider,
		inquirydomain.ErrProviderNotEligible,
		monitoringdomain.ErrInvalidPriority,
		monitoringdomain.ErrInvalidContent,
		paymentdomain.ErrInvalidID,
		paymentdomain.ErrInvalidPayload,
		paymentdomain.ErrInvalidEvent,
		paymentdomain.ErrMissingBooking,
	}
	for _, candidate := range validation {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
