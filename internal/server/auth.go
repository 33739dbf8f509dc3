package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/handyheartslabs/handyhearts/internal/account/domain"
	"github.com/handyheartslabs/handyhearts/internal/actorcontext"
	authdomain "github.com/handyheartslabs/handyhearts/internal/auth/domain"
)

type registerRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	PhoneE164 string `json:"phone_e164"`
}

// @Summary      Register
// @Description  Create a family or provider account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body registerRequest true "Register Request"
// @Success      200  {object}  DataResponse
// @Router       /auth/register [post]
func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.accountSvc.Register(c.Request.Context(), accountdomain.RegisterRequest{
		Email:     strings.TrimSpace(req.Email),
		Name:      strings.TrimSpace(req.Name),
		Password:  req.Password,
		Role:      accountdomain.Role(strings.ToUpper(strings.TrimSpace(req.Role))),
		PhoneE164: strings.TrimSpace(req.PhoneE164),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

// @Summary      Login
// @Description  Exchange credentials for a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body authdomain.LoginRequest true "Login Request"
// @Success      200  {object}  DataResponse
// @Router       /auth/login [post]
func (s *Server) Login(c *gin.Context) {
	var req authdomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

// @Summary      Logout
// @Description  Revoke the current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DataResponse
// @Router       /auth/logout [post]
func (s *Server) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if err := s.authSvc.Logout(c.Request.Context(), token); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"status": "logged_out"})
}

// @Summary      Me
// @Description  Return the authenticated account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DataResponse
// @Router       /auth/me [get]
func (s *Server) Me(c *gin.Context) {
	actor, ok := actorcontext.FromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.accountSvc.Get(c.Request.Context(), actor.UserID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func bearerToken(c *gin.Context) string {
	parts := strings.Fields(strings.TrimSpace(c.GetHeader("Authorization")))
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
