package http

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"go.uber.org/zap"

	"minifeed/internal/cache"
	"minifeed/internal/config"
	"minifeed/internal/database"
	"minifeed/internal/handler"
	"minifeed/internal/logger"
	appredis "minifeed/internal/redis"
	"minifeed/internal/repository"
	"minifeed/internal/service"
)

// Run loads configuration, connects the stores and serves the API.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("connected to database")

	redisClient, err := appredis.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Info("connected to redis")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	// Feed cache
	feedCache := cache.NewFeedCache(redisClient.Client, time.Duration(cfg.FeedCacheTTL)*time.Second)

	// Services
	userService := service.NewUserService(userRepo, log)
	tokenService := service.NewTokenService(cfg)
	postService := service.NewPostService(postRepo, likeRepo, db, log)
	followService := service.NewFollowService(userRepo, followRepo, feedCache, log)
	feedService := service.NewFeedService(feedCache, postRepo, followRepo, cfg.FeedPageSize, cfg.FeedMaxPageSize, log)

	// Handlers
	router := NewRouter(RouterConfig{
		AuthHandler: handler.NewAuthHandler(userService, tokenService, log),
		PostHandler: handler.NewPostHandler(postService, log),
		UserHandler: handler.NewUserHandler(followService, postService, log),
		FeedHandler: handler.NewFeedHandler(feedService, log),
		JWTSecret:   cfg.JWTSecret,
	})

	log.Info("starting server", zap.String("port", cfg.ServerPort))
	return stdhttp.ListenAndServe(":"+cfg.ServerPort, router)
}
