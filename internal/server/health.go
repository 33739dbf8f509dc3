package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Health
// @Description  Liveness and dependency health
// @Tags         system
// @Produce      json
// @Success      200  {object}  DataResponse
// @Router       /healthz [get]
func (s *Server) Healthz(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{"database": "ok"}
	healthy := true

	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "unreachable"
		healthy = false
	}

	if s.redis != nil {
		checks["redis"] = "ok"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unreachable"
			healthy = false
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": checks})
}
