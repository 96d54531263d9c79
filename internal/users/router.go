package users

import (
	"contactly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the user profile routes. Everything here requires a
// valid access token.
func SetupRoutes(rg *gin.RouterGroup, controller *Controller, resolver middleware.UserResolver) {
	group := rg.Group("/users")
	group.Use(middleware.RequireAuth(resolver))
	{
		group.GET("/me", controller.GetMe)
		group.PATCH("/avatar", controller.UpdateAvatar)
	}
}
