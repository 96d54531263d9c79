// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"contactly/internal/auth"
	"contactly/internal/contacts"
	"contactly/internal/notifications"
	"contactly/internal/shared/config"
	"contactly/internal/shared/database"
	"contactly/internal/users"
	"contactly/pkg/cache"
	"contactly/pkg/gravatar"
	"contactly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	codec     *auth.Codec
	publisher *notifications.Service
	log       *logger.Logger

	userService users.Service
	resolver    *auth.Resolver
}

// NewRouter creates a new router instance. The token codec is built in main
// so a missing signing secret aborts startup before any route is served.
func NewRouter(cfg *config.Config, db *database.DB, codec *auth.Codec, publisher *notifications.Service, log *logger.Logger) *Router {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Router{
		config:    cfg,
		db:        db,
		codec:     codec,
		publisher: publisher,
		log:       log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// User service first, the auth resolver depends on it
		r.setupUserDependencies()

		r.setupAuthRoutes(api)
		r.setupUserRoutes(api)
		r.setupContactRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "contactly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "contactly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupUserDependencies builds the cached user service and the request
// resolver shared by every protected route group.
func (r *Router) setupUserDependencies() {
	cacheService := cache.NewService(r.db.GetRedisClient())
	userRepo := users.NewRepository(r.db.GetPostgreSQL())
	r.userService = users.NewService(userRepo, cacheService, r.config.Redis.UserCacheTTL)
	r.resolver = auth.NewResolver(r.codec, r.userService)
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(auth.ServiceDeps{
		Repo:      authRepo,
		Hasher:    auth.NewPasswordHasher(),
		Issuer:    auth.NewIssuer(r.codec, r.config.JWT),
		Resolver:  r.resolver,
		Avatars:   gravatar.NewClient(0),
		Publisher: r.publisher,
		Profiles:  r.userService,
		BaseURL:   r.config.BaseURL,
		Logger:    r.log,
	})
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.resolver)

	authRouter.SetupRoutes(rg)
}

// setupUserRoutes configures profile routes
func (r *Router) setupUserRoutes(rg *gin.RouterGroup) {
	userController := users.NewController(r.userService)
	users.SetupRoutes(rg, userController, r.resolver.AsUserResolver())
}

// setupContactRoutes configures contact management routes
func (r *Router) setupContactRoutes(rg *gin.RouterGroup) {
	contactRepo := contacts.NewRepository(r.db.GetPostgreSQL())
	contactService := contacts.NewService(contactRepo, r.log)
	contactController := contacts.NewController(contactService)

	contacts.SetupRoutes(rg, contactController, r.resolver.AsUserResolver())
}
