package auth

import (
	"taskflow/middleware"
	"taskflow/services"

	"github.com/gin-gonic/gin"
)

func AuthController(router *gin.Engine, authService *services.AuthService) {
	routes := router.Group("/auth")
	{
		routes.POST("/register", func(c *gin.Context) {
			Signup(c, authService)
		})
		routes.POST("/login", func(c *gin.Context) {
			Signin(c, authService)
		})
		routes.GET("/profile", middleware.AccessTokenMiddleware(authService), func(c *gin.Context) {
			GetProfile(c, authService)
		})
		routes.PUT("/profile", middleware.AccessTokenMiddleware(authService), func(c *gin.Context) {
			UpdateProfile(c, authService)
		})
	}
}
