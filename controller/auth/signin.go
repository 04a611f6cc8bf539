package auth

import (
	"net/http"

	"taskflow/controller/response"
	"taskflow/dto"
	"taskflow/services"

	"github.com/gin-gonic/gin"
)

func Signin(c *gin.Context, authService *services.AuthService) {
	var request dto.SigninRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BindError(c, err)
		return
	}

	user, token, err := authService.Login(c.Request.Context(), request)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAuthResponse(user, token))
}
