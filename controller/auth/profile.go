package auth

import (
	"net/http"

	"taskflow/controller/response"
	"taskflow/dto"
	"taskflow/middleware"
	"taskflow/services"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context, authService *services.AuthService) {
	user, err := authService.Profile(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func UpdateProfile(c *gin.Context, authService *services.AuthService) {
	var request dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BindError(c, err)
		return
	}

	user, token, err := authService.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c).ID, request)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAuthResponse(user, token))
}
