package auth

import (
	"contactly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
	resolver   *Resolver
}

// NewRouter creates a new auth router
func NewRouter(controller *Controller, resolver *Resolver) *Router {
	return &Router{
		controller: controller,
		resolver:   resolver,
	}
}

// SetupRoutes registers all auth routes
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/signup", authRouter.controller.Signup)
		auth.POST("/login", authRouter.controller.Login)
		auth.POST("/refresh", authRouter.controller.Refresh)
		auth.GET("/confirm/:token", authRouter.controller.ConfirmEmail)
		auth.POST("/request-verification", authRouter.controller.RequestVerification)

		// Protected routes (authentication required)
		protected := auth.Group("")
		protected.Use(middleware.RequireAuth(authRouter.resolver.AsUserResolver()))
		{
			protected.POST("/logout", authRouter.controller.Logout)
		}
	}
}
