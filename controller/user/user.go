package user

import (
	"net/http"

	"taskflow/controller/response"
	"taskflow/dto"
	"taskflow/middleware"
	"taskflow/services"

	"github.com/gin-gonic/gin"
)

func UserController(router *gin.Engine, userService *services.UserService, auth middleware.Authenticator) {
	routes := router.Group("/users", middleware.AccessTokenMiddleware(auth))
	{
		routes.GET("", middleware.AdminMiddleware(), func(c *gin.Context) {
			ListUsers(c, userService)
		})
		routes.GET("/:id", func(c *gin.Context) {
			GetUser(c, userService)
		})
	}
}

func ListUsers(c *gin.Context, userService *services.UserService) {
	members, err := userService.ListMembers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MembersResponse{UsersWithTaskCounts: members})
}

func GetUser(c *gin.Context, userService *services.UserService) {
	user, err := userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
