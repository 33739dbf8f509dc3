package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/handyheartslabs/handyhearts/internal/catalog/domain"
	"github.com/handyheartslabs/handyhearts/internal/pricing"
)

type quoteRequest struct {
	ServiceID string  `json:"service_id"`
	Hours     float64 `json:"hours"`
	Weekend   bool    `json:"weekend"`
	SameDay   bool    `json:"same_day"`
}

type quoteResponse struct {
	ServiceID   string            `json:"service_id"`
	ServiceName string            `json:"service_name"`
	Hours       float64           `json:"hours"`
	Weekend     bool              `json:"weekend"`
	SameDay     bool              `json:"same_day"`
	Breakdown   pricing.Breakdown `json:"breakdown"`
}

// @Summary      Quote
// @Description  Price a prospective booking without creating it
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body quoteRequest true "Quote Request"
// @Success      200  {object}  DataResponse
// @Router       /quotes [post]
func (s *Server) CreateQuote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if req.Hours <= 0 {
		AbortWithError(c, newValidationError("hours", "invalid_hours", "hours must be positive"))
		return
	}

	svc, err := s.catalogSvc.Get(c.Request.Context(), strings.TrimSpace(req.ServiceID))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !svc.Active {
		AbortWithError(c, catalogdomain.ErrInactive)
		return
	}

	breakdown := pricing.Calculate(pricing.ServiceRate{
		Name:          svc.Name,
		BaseRateCents: svc.BaseRateCents,
		MinHours:      svc.MinHours,
	}, req.Hours, req.Weekend, req.SameDay)

	respondData(c, quoteResponse{
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		Hours:       req.Hours,
		Weekend:     req.Weekend,
		SameDay:     req.SameDay,
		Breakdown:   breakdown,
	})
}
