package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zenadmin/pkg/logger"
)

type Handlers struct {
	Service *Service
}

// Stats handles GET /api/dashboard/stats (protected).
func (h Handlers) Stats(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("dashboard stats failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
