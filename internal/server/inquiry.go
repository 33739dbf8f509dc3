package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	inquirydomain "github.com/handyheartslabs/handyhearts/internal/inquiry/domain"
)

// @Summary      Submit Inquiry
// @Description  Submit a care inquiry for follow-up
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body inquirydomain.SubmitRequest true "Submit Inquiry Request"
// @Success      200  {object}  DataResponse
// @Router       /inquiries [post]
func (s *Server) SubmitInquiry(c *gin.Context) {
	var req inquirydomain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inquirySvc.Submit(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List My Inquiries
// @Description  List the caller's inquiries
// @Tags         inquiries
// @Produce      json
// @Security     BearerAuth
// @Param        status      query  string  false  "Status"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  ListResponse
// @Router       /inquiries [get]
func (s *Server) ListMyInquiries(c *gin.Context) {
	var query inquirydomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inquirySvc.ListMine(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp.Inquiries, &resp.PageInfo)
}

// @Summary      List Assigned Inquiries
// @Description  List inquiries assigned to the calling provider
// @Tags         provider
// @Produce      json
// @Security     BearerAuth
// @Param        status      query  string  false  "Status"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  ListResponse
// @Router       /provider/inquiries [get]
func (s *Server) ListAssignedInquiries(c *gin.Context) {
	var query inquirydomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inquirySvc.ListAssigned(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp.Inquiries, &resp.PageInfo)
}

// @Summary      List All Inquiries
// @Description  List every inquiry, filterable by status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status      query  string  false  "Status"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  ListResponse
// @Router       /admin/inquiries [get]
func (s *Server) ListAllInquiries(c *gin.Context) {
	var query inquirydomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inquirySvc.ListAll(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp.Inquiries, &resp.PageInfo)
}

type updateInquiryStatusRequest struct {
	Status string `json:"status"`
}

// @Summary      Update Inquiry Status
// @Description  Move an inquiry through its review workflow
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                      true  "Inquiry ID"
// @Param        request  body  updateInquiryStatusRequest  true  "Status Request"
// @Success      200  {object}  DataResponse
// @Router       /admin/inquiries/{id}/status [patch]
func (s *Server) UpdateInquiryStatus(c *gin.Context) {
	var req updateInquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inquirySvc.UpdateStatus(c.Request.Context(),
		strings.TrimSpace(c.Param("id")),
		inquirydomain.Status(strings.ToLower(strings.TrimSpace(req.Status))))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

type assignInquiryRequest struct {
	ProviderID string `json:"provider_id"`
}

// @Summary      Assign Inquiry
// @Description  Assign an approved provider to an inquiry
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                true  "Inquiry ID"
// @Param        request  body  assignInquiryRequest  true  "Assign Request"
// @Success      200  {object}  DataResponse
// @Router       /admin/inquiries/{id}/assign [post]
func (s *Server) AssignInquiryProvider(c *gin.Context) {
	var req assignInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inquirySvc.AssignProvider(c.Request.Context(),
		strings.TrimSpace(c.Param("id")), strings.TrimSpace(req.ProviderID))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
