package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	bookingdomain "github.com/handyheartslabs/handyhearts/internal/booking/domain"
)

// @Summary      Create Booking
// @Description  Book a service visit; the price is computed and frozen server-side
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body bookingdomain.CreateRequest true "Create Booking Request"
// @Success      200  {object}  DataResponse
// @Router       /bookings [post]
func (s *Server) CreateBooking(c *gin.Context) {
	var req bookingdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bookingSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List My Bookings
// @Description  List the caller's bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        status      query  string  false  "Status"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  ListResponse
// @Router       /bookings [get]
func (s *Server) ListBookings(c *gin.Context) {
	var query bookingdomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bookingSvc.ListByFamily(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp.Bookings, &resp.PageInfo)
}

// @Summary      Get Booking
// @Description  Get a booking visible to the caller
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  DataResponse
// @Router       /bookings/{id} [get]
func (s *Server) GetBooking(c *gin.Context) {
	resp, err := s.bookingSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Cancel Booking
// @Description  Cancel a booking that is not yet completed
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  DataResponse
// @Router       /bookings/{id}/cancel [post]
func (s *Server) CancelBooking(c *gin.Context) {
	resp, err := s.bookingSvc.Cancel(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Booking Receipt
// @Description  Download the PDF receipt for a paid booking
// @Tags         bookings
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {file}  binary
// @Router       /bookings/{id}/receipt [get]
func (s *Server) GetBookingReceipt(c *gin.Context) {
	pdf, err := s.receiptSvc.Render(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipt.pdf"`)
	c.Data(200, "application/pdf", pdf)
}

// @Summary      List Assigned Bookings
// @Description  List bookings assigned to the calling provider
// @Tags         provider
// @Produce      json
// @Security     BearerAuth
// @Param        status      query  string  false  "Status"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  ListResponse
// @Router       /provider/bookings [get]
func (s *Server) ListProviderBookings(c *gin.Context) {
	var query bookingdomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bookingSvc.ListByProvider(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp.Bookings, &resp.PageInfo)
}

// @Summary      Start Booking
// @Description  Mark an assigned booking as in progress
// @Tags         provider
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  DataResponse
// @Router       /provider/bookings/{id}/start [post]
func (s *Server) StartBooking(c *gin.Context) {
	resp, err := s.bookingSvc.Start(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Complete Booking
// @Description  Mark an in-progress booking as completed
// @Tags         provider
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  DataResponse
// @Router       /provider/bookings/{id}/complete [post]
func (s *Server) CompleteBooking(c *gin.Context) {
	resp, err := s.bookingSvc.Complete(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List All Bookings
// @Description  List every booking, filterable by status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status      query  string  false  "Status"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  ListResponse
// @Router       /admin/bookings [get]
func (s *Server) ListAllBookings(c *gin.Context) {
	var query bookingdomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bookingSvc.ListAll(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp.Bookings, &resp.PageInfo)
}

type assignBookingRequest struct {
	ProviderID string `json:"provider_id"`
}

// @Summary      Assign Booking
// @Description  Assign an approved provider to a paid booking
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                true  "Booking ID"
// @Param        request  body  assignBookingRequest  true  "Assign Request"
// @Success      200  {object}  DataResponse
// @Router       /admin/bookings/{id}/assign [post]
func (s *Server) AssignBooking(c *gin.Context) {
	var req assignBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bookingSvc.Assign(c.Request.Context(),
		strings.TrimSpace(c.Param("id")), strings.TrimSpace(req.ProviderID))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
