package middleware

import (
	"context"

	"taskflow/controller/response"
	"taskflow/model"
	"taskflow/services"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// Authenticator resolves an Authorization header to a live user.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*model.User, error)
}

func AccessTokenMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// AdminMiddleware must run after AccessTokenMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := services.RequireRole(CurrentUser(c), model.RoleAdmin); err != nil {
			response.Error(c, err)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user set by AccessTokenMiddleware, or nil.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}
