package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/greenspoon/backend/internal/api"
	"github.com/greenspoon/backend/internal/middleware"
)

// Setup wires the HTTP surface: /auth for registration and login, /api for
// everything else. The rate limiter guards only the credential endpoints.
func Setup(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	userHandler *api.UserHandler,
	tokens middleware.TokenValidator,
	limiter *middleware.RateLimiter,
	corsOrigins []string,
	log *logrus.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(corsOrigins))
	router.Use(middleware.ErrorHandler(log))

	auth := router.Group("/auth")
	auth.Use(limiter.Middleware())
	authHandler.RegisterRoutes(auth)

	requireAuth := middleware.AuthMiddleware(tokens)

	v1 := router.Group("/api")
	recipeHandler.RegisterRoutes(v1, requireAuth)
	userHandler.RegisterRoutes(v1, requireAuth)

	return router
}
