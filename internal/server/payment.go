package server

import (
	"io"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/handyheartslabs/handyhearts/internal/payment/domain"
)

// @Summary      Create Payment Intent
// @Description  Open a payment for a booking awaiting payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body paymentdomain.CreateIntentRequest true "Create Intent Request"
// @Success      200  {object}  DataResponse
// @Router       /payments/intents [post]
func (s *Server) CreatePaymentIntent(c *gin.Context) {
	var req paymentdomain.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.CreateIntent(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Stripe Webhook
// @Description  Ingest Stripe payment events
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200  {object}  DataResponse
// @Router       /webhooks/stripe [post]
func (s *Server) StripeWebhook(c *gin.Context) {
	// Signature verification needs the raw bytes, not a re-encoding.
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, paymentdomain.ErrInvalidPayload)
		return
	}

	if err := s.webhookSvc.IngestWebhook(c.Request.Context(), payload, c.Request.Header); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"received": true})
}
