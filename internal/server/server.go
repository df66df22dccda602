package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"blogly/internal/cache"
	"blogly/internal/config"
	"blogly/internal/database"
	"blogly/internal/middleware"
	"blogly/internal/observability"
	"blogly/internal/repository"
	"blogly/internal/service"
	"blogly/web"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	metrics        *observability.Metrics
	promMiddleware *fiberprometheus.FiberPrometheus
	userService    *service.UserService
	postService    *service.PostService
	tagService     *service.TagService
}

// NewServer connects to the database (and Redis when configured), brings the
// schema up to date and returns a ready Server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.ApplySchema(context.Background(), db, cfg); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("schema setup failed: %w", err)
	}
	return NewServerWithDeps(cfg, db, nil)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// When redisClient is nil and cfg.RedisURL is set, a client is dialed here;
// an unreachable Redis only disables write rate limiting.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	metrics := observability.NewMetrics()
	if err := db.Use(metrics.GormPlugin()); err != nil && !errors.Is(err, gorm.ErrRegistered) {
		return nil, fmt.Errorf("register query metrics: %w", err)
	}

	if redisClient == nil && cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(context.Background(), cfg.RedisURL, metrics)
		if err != nil {
			middleware.Logger.Warn("Redis unavailable; write rate limiting disabled", slog.String("error", err.Error()))
		} else {
			redisClient = client
		}
	}

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		metrics:        metrics,
		promMiddleware: fiberprometheus.NewWithRegistry(metrics.Registry, "blogly", "http", "", nil),
	}
	s.userService = service.NewUserService(repository.NewUserRepository(db, cfg.UserDeletePolicy), metrics)
	s.postService = service.NewPostService(repository.NewPostRepository(db), metrics)
	s.tagService = service.NewTagService(repository.NewTagRepository(db), metrics)

	return s, nil
}

// NewApp builds the Fiber application with views, middleware and routes.
func (s *Server) NewApp() *fiber.App {
	engine := html.NewFileSystem(web.Templates(), ".html")

	app := fiber.New(fiber.Config{
		AppName:      "Blogly",
		Views:        engine,
		ViewsLayout:  "layouts/main",
		ErrorHandler: errorPage,
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Avatars are hot-linked from other origins.
	app.Use(helmet.New(helmet.Config{
		CrossOriginEmbedderPolicy: "unsafe-none",
	}))

	app.Use(middleware.StructuredLogger())

	if s.config.GlobalRateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        s.config.GlobalRateLimit,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				path := c.Path()
				return path == "/health/live" || path == "/health/ready" || path == "/metrics"
			},
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests, please try again later.")
			},
		}))
	}
}

// writeLimit throttles form submissions for resource per client.
func (s *Server) writeLimit(resource string) fiber.Handler {
	window := time.Duration(s.config.WriteRateWindowSeconds) * time.Second
	if window <= 0 {
		window = time.Minute
	}
	return middleware.RateLimit(s.redis, s.config.WriteRateLimit, window, resource)
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Blogly Metrics Dashboard",
	}))

	app.Get("/", s.Home)

	app.Get("/users", s.ListUsers)
	app.Get("/users/new", s.NewUserForm)
	app.Post("/users/new", s.writeLimit("users"), s.CreateUser)

	user := app.Group("/user/:id<int>")
	user.Get("/", s.ShowUser)
	user.Get("/edit", s.EditUserForm)
	user.Post("/edit", s.writeLimit("users"), s.UpdateUser)
	user.Post("/delete", s.writeLimit("users"), s.DeleteUser)
	user.Get("/posts/new", s.NewPostForm)
	user.Post("/posts/new", s.writeLimit("posts"), s.CreatePost)

	posts := app.Group("/posts/:id<int>")
	posts.Get("/", s.ShowPost)
	posts.Get("/edit", s.EditPostForm)
	posts.Post("/edit", s.writeLimit("posts"), s.UpdatePost)
	posts.Post("/delete", s.writeLimit("posts"), s.DeletePost)

	app.Get("/tags", s.ListTags)
	app.Get("/tags/new", s.NewTagForm)
	app.Post("/tags/new", s.writeLimit("tags"), s.CreateTag)

	tags := app.Group("/tags/:id<int>")
	tags.Get("/", s.ShowTag)
	tags.Get("/edit", s.EditTagForm)
	tags.Post("/edit", s.writeLimit("tags"), s.UpdateTag)
	tags.Post("/delete", s.writeLimit("tags"), s.DeleteTag)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports database health and, when configured, Redis health.
// Redis is optional: without it only write rate limiting is lost.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "degraded"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start listens on the configured port, building the app first unless
// NewApp already did.
func (s *Server) Start() error {
	app := s.app
	if app == nil {
		app = s.NewApp()
	}
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}

	if err := database.Close(s.db); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return errors.Join(errs...)
}
