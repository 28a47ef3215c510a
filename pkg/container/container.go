package container

import (
	"context"
	"fmt"
	"time"

	"newsapi-backend/internal/config"
	"newsapi-backend/internal/infrastructure/cache"
	"newsapi-backend/internal/infrastructure/database"
	"newsapi-backend/internal/infrastructure/memory"
	"newsapi-backend/internal/infrastructure/webhook"
	"newsapi-backend/internal/seed"
	"newsapi-backend/pkg/hash"
	"newsapi-backend/pkg/jwt"

	"newsapi-backend/internal/domains/category"
	categoryHandler "newsapi-backend/internal/domains/category/handler"
	categoryRepo "newsapi-backend/internal/domains/category/repository"
	categoryService "newsapi-backend/internal/domains/category/service"

	"newsapi-backend/internal/domains/news"
	newsHandler "newsapi-backend/internal/domains/news/handler"
	newsRepo "newsapi-backend/internal/domains/news/repository"
	newsService "newsapi-backend/internal/domains/news/service"

	"newsapi-backend/internal/domains/publisher"
	publisherHandler "newsapi-backend/internal/domains/publisher/handler"
	publisherRepo "newsapi-backend/internal/domains/publisher/repository"
	publisherService "newsapi-backend/internal/domains/publisher/service"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the API process.
// Build order: config -> infrastructure -> repositories -> services -> handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB // nil with the memory driver
	Memory     *memory.Store        // nil with the postgres driver
	Redis      *cache.RedisClient   // nil when not connected
	Queue      *asynq.Client        // nil unless WEBHOOK_MODE=queue
	JWTManager *jwt.Manager
	Hasher     *hash.Hasher
	Dispatcher *webhook.Dispatcher

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	PublisherRepo publisher.Repository
	CategoryRepo  category.Repository
	NewsRepo      news.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	PublisherService publisher.Service
	CategoryService  category.Service
	NewsService      news.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	PublisherHandler *publisherHandler.PublisherHandler
	CategoryHandler  *categoryHandler.CategoryHandler
	NewsHandler      *newsHandler.NewsHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer loads config from the environment and builds the graph
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return New(cfg)
}

// New builds the dependency graph from an explicit config
func New(cfg *config.Config) (*Container, error) {
	log.Info().
		Str("env", cfg.App.Environment).
		Str("store", cfg.Store.Driver).
		Str("webhook_mode", cfg.Webhook.Mode).
		Msg("initializing container")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: SECURITY PRIMITIVES
	// ========================================
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	c.Hasher = hash.NewHasher(cfg.App.BcryptCost)

	// ========================================
	// STEP 2: STORE
	// ========================================
	if err := c.initStore(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 3: REDIS + WEBHOOK DELIVERY
	// ========================================
	if err := c.initWebhooks(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 4: SERVICES + HANDLERS
	// ========================================
	c.initServices()
	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initStore() error {
	switch c.Config.Store.Driver {
	case config.StoreDriverMemory:
		store := memory.NewStore()

		// an empty memory store has no categories, so it starts seeded
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := seed.Run(ctx, store, c.Hasher); err != nil {
			return fmt.Errorf("failed to seed memory store: %w", err)
		}

		c.Memory = store
		c.PublisherRepo = store.Publishers()
		c.CategoryRepo = store.Categories()
		c.NewsRepo = store.News()
		log.Info().Msg("memory store ready")

	default:
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return fmt.Errorf("failed to load database config: %w", err)
		}

		db := database.NewPostgresDB(dbConfig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.HealthCheck(ctx); err != nil {
			db.Close()
			return fmt.Errorf("database health check failed: %w", err)
		}

		c.DB = db
		c.PublisherRepo = publisherRepo.NewPostgresRepository(db.Pool)
		c.CategoryRepo = categoryRepo.NewPostgresRepository(db.Pool)
		c.NewsRepo = newsRepo.NewPostgresRepository(db.Pool)
		log.Info().Msg("postgres store ready")
	}

	return nil
}

// initWebhooks picks the deliverer. Queue mode needs Redis; inline mode
// only uses it for health checks and carries on without it.
func (c *Container) initWebhooks() error {
	cfg := c.Config
	queueMode := cfg.Webhook.Mode == config.WebhookModeQueue

	if queueMode || cfg.Store.Driver == config.StoreDriverPostgres {
		rc := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rc.Connect(ctx)
		cancel()

		switch {
		case err == nil:
			c.Redis = rc
			log.Info().Str("addr", cfg.Redis.Host).Msg("redis connected")
		case queueMode:
			_ = rc.Close()
			return fmt.Errorf("redis is required for queued webhooks: %w", err)
		default:
			_ = rc.Close()
			log.Warn().Err(err).Msg("redis connection failed (non-critical)")
		}
	}

	var deliverer webhook.Deliverer
	if queueMode {
		c.Queue = asynq.NewClient(c.Redis.AsynqOpt())
		deliverer = webhook.NewQueueDeliverer(c.Queue, cfg.Webhook.Queue)
	} else {
		deliverer = webhook.NewHTTPSender(cfg.Webhook.Timeout)
	}

	c.Dispatcher = webhook.NewDispatcher(deliverer, cfg.Webhook.Timeout)
	return nil
}

func (c *Container) initServices() {
	c.PublisherService = publisherService.NewPublisherService(
		c.PublisherRepo,
		c.Hasher,
		c.JWTManager,
	)

	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo)

	c.NewsService = newsService.NewNewsService(
		c.NewsRepo,
		c.CategoryRepo, // category existence check
		c.Dispatcher,
	)
}

func (c *Container) initHandlers() {
	c.PublisherHandler = publisherHandler.NewPublisherHandler(c.PublisherService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.NewsHandler = newsHandler.NewNewsHandler(c.NewsService)
}

// ========================================
// HEALTH + CLEANUP
// ========================================

// HealthChecks reports each dependency as "ok" or its error
func (c *Container) HealthChecks(ctx context.Context) map[string]string {
	checks := map[string]string{}

	if c.DB != nil {
		checks["database"] = status(c.DB.HealthCheck(ctx))
	} else {
		checks["database"] = "memory"
	}

	if c.Redis != nil {
		checks["redis"] = status(c.Redis.HealthCheck(ctx))
	} else {
		checks["redis"] = "disabled"
	}

	return checks
}

func status(err error) string {
	if err != nil {
		return err.Error()
	}
	return "ok"
}

// Cleanup waits a bounded time for in-flight webhooks, then closes connections
func (c *Container) Cleanup() {
	log.Info().Msg("cleaning up container resources")

	if c.Dispatcher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), c.Config.Webhook.ShutdownGrace)
		if err := c.Dispatcher.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("in-flight webhooks abandoned")
		}
		cancel()
	}

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close asynq client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("container cleanup completed")
}
