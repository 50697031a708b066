package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/greenspoon/backend/config"
	"github.com/greenspoon/backend/internal/api"
	"github.com/greenspoon/backend/internal/database"
	"github.com/greenspoon/backend/internal/middleware"
	"github.com/greenspoon/backend/internal/router"
	"github.com/greenspoon/backend/internal/server"
	"github.com/greenspoon/backend/internal/service"
	"github.com/greenspoon/backend/internal/store"
	"github.com/greenspoon/backend/internal/validation"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	ctx := context.Background()

	refs := store.NewReferenceStore(db)
	if err := refs.Seed(ctx); err != nil {
		log.WithError(err).Fatal("failed to seed reference data")
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, enrichment cache and rate limiting disabled")
		redisClient = nil
	}

	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to configure image storage")
	}

	recipes := store.NewRecipeStore(db)
	users := store.NewUserStore(db)
	validator := validation.New(refs, users, cfg.MaxUploadImageSize)

	jwtExpiry, err := time.ParseDuration(cfg.JWTExpiry)
	if err != nil {
		log.WithError(err).Fatal("invalid JWT_EXPIRE value")
	}

	images := service.NewS3ImageStore(s3cfg, log)
	enricher := service.NewNutritionService(cfg, refs, redisClient, log)
	authService := service.NewAuthService(users, validator, cfg.JWTSecret, jwtExpiry, log)
	recipeService := service.NewRecipeService(recipes, refs, users, enricher, images, validator, log)
	userService := service.NewUserService(users, recipes, images, validator, log)

	limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     20,
		KeyPrefix: "ratelimit:auth",
	})

	engine := router.Setup(
		api.NewAuthHandler(authService),
		api.NewRecipeHandler(recipeService),
		api.NewUserHandler(userService),
		authService,
		limiter,
		cfg.CORSOrigins,
		log,
	)

	srv := server.New(engine, log)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
