package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/handyheartslabs/handyhearts/internal/account/domain"
	bookingdomain "github.com/handyheartslabs/handyhearts/internal/booking/domain"
	monitoringdomain "github.com/handyheartslabs/handyhearts/internal/monitoring/domain"
)

// @Summary      List Users
// @Description  List accounts, filterable by role
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role        query  string  false  "Role"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  ListResponse
// @Router       /admin/users [get]
func (s *Server) ListUsers(c *gin.Context) {
	var query accountdomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.accountSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp.Users, &resp.PageInfo)
}

// @Summary      Approve User
// @Description  Approve a provider account for assignments
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  DataResponse
// @Router       /admin/users/{id}/approve [post]
func (s *Server) ApproveUser(c *gin.Context) {
	resp, err := s.accountSvc.Approve(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Ban User
// @Description  Ban an account; active sessions stop working immediately
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  DataResponse
// @Router       /admin/users/{id}/ban [post]
func (s *Server) BanUser(c *gin.Context) {
	resp, err := s.accountSvc.SetBanned(c.Request.Context(), strings.TrimSpace(c.Param("id")), true)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Unban User
// @Description  Lift a ban on an account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  DataResponse
// @Router       /admin/users/{id}/unban [post]
func (s *Server) UnbanUser(c *gin.Context) {
	resp, err := s.accountSvc.SetBanned(c.Request.Context(), strings.TrimSpace(c.Param("id")), false)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Create Monitoring Note
// @Description  Leave an operations note for the admin team
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body monitoringdomain.CreateRequest true "Create Note Request"
// @Success      200  {object}  DataResponse
// @Router       /admin/monitoring/notes [post]
func (s *Server) CreateMonitoringNote(c *gin.Context) {
	var req monitoringdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.monitorSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List Monitoring Notes
// @Description  List operations notes, newest first
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  ListResponse
// @Router       /admin/monitoring/notes [get]
func (s *Server) ListMonitoringNotes(c *gin.Context) {
	var query monitoringdomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.monitorSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp.Notes, &resp.PageInfo)
}

type analyticsSummary struct {
	UsersByRole       map[string]int64 `json:"users_by_role"`
	PendingProviders  int64            `json:"pending_providers"`
	BookingsByStatus  map[string]int64 `json:"bookings_by_status"`
	OpenInquiries     int64            `json:"open_inquiries"`
	PaidRevenueCents  int64            `json:"paid_revenue_cents"`
	CompletedBookings int64            `json:"completed_bookings"`
}

// @Summary      Analytics Summary
// @Description  Aggregate counts for the admin dashboard
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DataResponse
// @Router       /admin/analytics/summary [get]
func (s *Server) AnalyticsSummary(c *gin.Context) {
	ctx := c.Request.Context()
	summary := analyticsSummary{
		UsersByRole:      map[string]int64{},
		BookingsByStatus: map[string]int64{},
	}

	var roleCounts []struct {
		Role  string
		Count int64
	}
	if err := s.db.WithContext(ctx).Model(&accountdomain.User{}).
		Select("role, count(*) as count").Group("role").
		Scan(&roleCounts).Error; err != nil {
		AbortWithError(c, err)
		return
	}
	for _, row := range roleCounts {
		summary.UsersByRole[row.Role] = row.Count
	}

	if err := s.db.WithContext(ctx).Model(&accountdomain.User{}).
		Where("role = ? AND is_approved = ?", accountdomain.RoleProvider, false).
		Count(&summary.PendingProviders).Error; err != nil {
		AbortWithError(c, err)
		return
	}

	var statusCounts []struct {
		Status string
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&bookingdomain.Booking{}).
		Select("status, count(*) as count").Group("status").
		Scan(&statusCounts).Error; err != nil {
		AbortWithError(c, err)
		return
	}
	for _, row := range statusCounts {
		summary.BookingsByStatus[row.Status] = row.Count
	}
	summary.CompletedBookings = summary.BookingsByStatus[string(bookingdomain.StatusCompleted)]

	if err := s.db.WithContext(ctx).Model(&bookingdomain.Booking{}).
		Where("status IN ?", []bookingdomain.Status{
			bookingdomain.StatusPaid,
			bookingdomain.StatusAssigned,
			bookingdomain.StatusInProgress,
			bookingdomain.StatusCompleted,
		}).
		Select("coalesce(sum(total_amount_cents), 0)").
		Scan(&summary.PaidRevenueCents).Error; err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.db.WithContext(ctx).
		Table("inquiry_submissions").
		Where("status IN ?", []string{"new", "in_review"}).
		Count(&summary.OpenInquiries).Error; err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, summary)
}
