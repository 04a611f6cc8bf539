package auth

import (
	"net/http"

	"taskflow/controller/response"
	"taskflow/dto"
	"taskflow/services"

	"github.com/gin-gonic/gin"
)

func Signup(c *gin.Context, authService *services.AuthService) {
	var request dto.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BindError(c, err)
		return
	}

	user, token, err := authService.Register(c.Request.Context(), request, services.ClientInfo{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAuthResponse(user, token))
}
