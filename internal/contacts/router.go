package contacts

import (
	"github.com/gin-gonic/gin"

	"contactly/internal/shared/middleware"
)

// SetupRoutes registers the contact routes. The whole group requires a valid
// access token; static paths are declared before the :id parameter routes.
func SetupRoutes(rg *gin.RouterGroup, controller *Controller, resolver middleware.UserResolver) {
	group := rg.Group("/contacts")
	group.Use(middleware.RequireAuth(resolver))
	{
		group.GET("", controller.ListContacts)
		group.POST("", controller.CreateContact)
		group.GET("/search", controller.SearchContacts)
		group.GET("/birthdays", controller.UpcomingBirthdays)
		group.GET("/:id", controller.GetContact)
		group.PATCH("/:id", controller.UpdateContact)
		group.DELETE("/:id", controller.DeleteContact)
	}
}
