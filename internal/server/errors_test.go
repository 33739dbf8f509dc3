package server

import (
	"errors"
	"net/http"
	"testing"

	accountdomain "github.com/handyheartslabs/handyhearts/internal/account/domain"
	authdomain "github.com/handyheartslabs/handyhearts/internal/auth/domain"
	bookingdomain "github.com/handyheartslabs/handyhearts/internal/booking/domain"
	catalogdomain "github.com/handyheartslabs/handyhearts/internal/catalog/domain"
	paymentdomain "github.com/handyheartslabs/handyhearts/internal/payment/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{authdomain.ErrInvalidCredentials, http.StatusUnauthorized},
		{authdomain.ErrSessionExpired, http.StatusUnauthorized},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{bookingdomain.ErrForbidden, http.StatusForbidden},
		{authdomain.ErrRateLimited, http.StatusTooManyRequests},
		{bookingdomain.ErrNotFound, http.StatusNotFound},
		{catalogdomain.ErrNotFound, http.StatusNotFound},
		{accountdomain.ErrEmailTaken, http.StatusConflict},
		{bookingdomain.ErrInvalidTransition, http.StatusConflict},
		{paymentdomain.ErrBookingNotPayable, http.StatusConflict},
		{catalogdomain.ErrInactive, http.StatusConflict},
		{paymentdomain.ErrInvalidSignature, http.StatusBadRequest},
		{bookingdomain.ErrInvalidDuration, http.StatusBadRequest},
		{accountdomain.ErrInvalidEmail, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, statusFor(tc.err), "error %v", tc.err)
	}
}
