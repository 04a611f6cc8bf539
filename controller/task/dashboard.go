package task

import (
	"net/http"

	"taskflow/controller/response"
	"taskflow/middleware"
	"taskflow/services"

	"github.com/gin-gonic/gin"
)

func DashboardData(c *gin.Context, dashboard *services.DashboardService) {
	data, err := dashboard.GlobalSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func UserDashboardData(c *gin.Context, dashboard *services.DashboardService) {
	data, err := dashboard.UserSummary(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
