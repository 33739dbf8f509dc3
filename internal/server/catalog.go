package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/handyheartslabs/handyhearts/internal/catalog/domain"
)

// @Summary      List Services
// @Description  List bookable catalog services
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        active_only  query  bool    false  "Active Only"
// @Param        page_token   query  string  false  "Page Token"
// @Param        page_size    query  int     false  "Page Size"
// @Success      200  {object}  ListResponse
// @Router       /catalog [get]
func (s *Server) ListCatalog(c *gin.Context) {
	var query catalogdomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp.Services, &resp.PageInfo)
}

// @Summary      Get Service
// @Description  Get a catalog service by ID
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  DataResponse
// @Router       /catalog/{id} [get]
func (s *Server) GetCatalogService(c *gin.Context) {
	resp, err := s.catalogSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Create Service
// @Description  Add a catalog service
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body catalogdomain.CreateRequest true "Create Service Request"
// @Success      200  {object}  DataResponse
// @Router       /admin/catalog [post]
func (s *Server) CreateCatalogService(c *gin.Context) {
	var req catalogdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Update Service
// @Description  Update catalog service terms
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                      true  "Service ID"
// @Param        request  body  catalogdomain.UpdateRequest true  "Update Service Request"
// @Success      200  {object}  DataResponse
// @Router       /admin/catalog/{id} [patch]
func (s *Server) UpdateCatalogService(c *gin.Context) {
	var req catalogdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.catalogSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Archive Service
// @Description  Retire a catalog service from new bookings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  DataResponse
// @Router       /admin/catalog/{id}/archive [post]
func (s *Server) ArchiveCatalogService(c *gin.Context) {
	resp, err := s.catalogSvc.Archive(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
