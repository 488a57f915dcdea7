package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookcircle-backend/internal/config"
	infraCache "bookcircle-backend/internal/infrastructure/cache"
	"bookcircle-backend/internal/infrastructure/database"
	"bookcircle-backend/pkg/cache"
	"bookcircle-backend/pkg/jwt"

	activityHandler "bookcircle-backend/internal/domains/activity/handler"
	activityRepo "bookcircle-backend/internal/domains/activity/repository"
	activityService "bookcircle-backend/internal/domains/activity/service"
	bookHandler "bookcircle-backend/internal/domains/book/handler"
	bookRepo "bookcircle-backend/internal/domains/book/repository"
	bookService "bookcircle-backend/internal/domains/book/service"
	followHandler "bookcircle-backend/internal/domains/follow/handler"
	followRepo "bookcircle-backend/internal/domains/follow/repository"
	followService "bookcircle-backend/internal/domains/follow/service"
	userHandler "bookcircle-backend/internal/domains/user/handler"
	userRepo "bookcircle-backend/internal/domains/user/repository"
	userService "bookcircle-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton living for the application lifetime.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	UserRepo     userRepo.UserRepository
	FollowRepo   followRepo.FollowRepository
	ActivityRepo activityRepo.ActivityRepository
	BookRepo     bookRepo.BookRepository

	Recorder          activityService.Recorder
	FeedService       activityService.FeedService
	EngagementService activityService.EngagementService
	FollowService     followService.FollowService
	UserService       userService.UserService
	BookService       bookService.BookService

	UserHandler     *userHandler.UserHandler
	FollowHandler   *followHandler.FollowHandler
	ActivityHandler *activityHandler.ActivityHandler
	BookHandler     *bookHandler.BookHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the dependency graph in order:
// config -> infrastructure -> repositories -> services -> handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	db := database.NewPostgresDB(&cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	// Redis is a soft dependency: follow-set caching degrades to direct
	// reads, so a connection failure only logs a warning.
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Redis connection failed, caching disabled")
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("Container initialized")
	return c, nil
}

// ========================================
// LAYER INITIALIZATION
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.FollowRepo = followRepo.NewPostgresFollowRepository(pool)
	c.ActivityRepo = activityRepo.NewPostgresActivityRepository(pool)
	c.BookRepo = bookRepo.NewPostgresBookRepository(pool)
}

func (c *Container) initServices() {
	c.Recorder = activityService.NewRecorder(c.ActivityRepo)

	c.FeedService = activityService.NewFeedService(
		c.ActivityRepo,
		c.FollowRepo, // satisfies FollowingLister
		c.Cache,
	)

	c.EngagementService = activityService.NewEngagementService(
		c.ActivityRepo,
		c.UserRepo,
	)

	c.FollowService = followService.NewFollowService(
		c.FollowRepo,
		c.UserRepo,
		c.Recorder,
		c.Cache,
	)

	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.FollowRepo, // satisfies FollowChecker
		c.Recorder,
		c.JWTManager,
	)

	c.BookService = bookService.NewBookService(
		c.BookRepo,
		c.UserRepo,
		c.Recorder,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.FollowHandler = followHandler.NewFollowHandler(c.FollowService)
	c.ActivityHandler = activityHandler.NewActivityHandler(c.FeedService, c.EngagementService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases infrastructure resources. Called from graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
		log.Info().Msg("Database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close Redis")
			} else {
				log.Info().Msg("Redis connections closed")
			}
		}
	}
}
