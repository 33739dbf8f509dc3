package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/handyheartslabs/handyhearts/internal/actorcontext"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with a correlation id, preserving one
// supplied by the caller or an upstream proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// SessionRequired authenticates requests with a bearer session token
// and installs the actor into the request context. Banned accounts are
// rejected here, not at login, so a ban takes effect immediately.
func (s *Server) SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.authSvc.Resolve(c.Request.Context(), parts[1])
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if user.IsBanned {
			AbortWithError(c, ErrForbidden)
			return
		}

		ctx := actorcontext.WithActor(c.Request.Context(), actorcontext.Actor{
			UserID: user.ID,
			Role:   string(user.Role),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RBACRequired enforces the role policy against the request path.
func (s *Server) RBACRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorcontext.FromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		allowed, err := s.enforcer.Enforce(actor.Role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !allowed {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}
