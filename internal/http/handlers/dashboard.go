package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/dashboard/stats
func (a API) DashboardStats(c *gin.Context) {
	stats, err := a.dashboardService().Stats(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
