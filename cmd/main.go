package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Ilia642021/web-development-labs-2-sem/internal/handlers"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/httperr"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/logger"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/middlewares"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/relations"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/repositories"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/services"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/storage"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title users-events API
// @version 1.0.0
// @description CRUD service for users and the events they create
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel, appEnv,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		rateLimitMax, rateLimitWindowSec, rateLimitRedisAddr,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel, appEnv,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		rateLimitMax, rateLimitWindowSec, rateLimitRedisAddr,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database and rate-limit configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel, appEnv string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	rateLimitMax, rateLimitWindowSec int,
	rateLimitRedisAddr string,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")
	appEnv = getEnv("APP_ENV", "production")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "database")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Rate limit config
	if rateLimitMax, err = strconv.Atoi(getEnv("RATE_LIMIT_MAX", "100")); err != nil {
		return
	}
	if rateLimitWindowSec, err = strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECOND", "60")); err != nil {
		return
	}
	rateLimitRedisAddr = getEnv("RATE_LIMIT_REDIS_ADDR", "")

	return
}

// run initializes the logger, database, schema, relations, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel, appEnv string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	rateLimitMax, rateLimitWindowSec int,
	rateLimitRedisAddr string,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel, appEnv); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	httperr.SetEnvironment(appEnv)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", pgHost, pgPort, pgDB)

	db, err := storage.NewDB(ctx, dsn, pgMaxOpenConns, pgMaxIdleConns)
	if err != nil {
		logger.Log.Fatal("PostgreSQL connection error:", err)
	}
	defer db.Close()

	// Apply schema migrations
	if err := storage.Migrate(db); err != nil {
		logger.Log.Fatal("migration error:", err)
	}
	logger.Log.Info("Schema is up to date (users and events)")

	// Declare the user/event association once, before serving traffic
	if err := relations.Setup(); err != nil {
		logger.Log.Fatal("association setup error:", err)
	}

	// Pick the rate-limit counter store
	var limitStore middlewares.CounterStore
	if rateLimitRedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: rateLimitRedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Log.Fatal("Redis connection error:", err)
		}
		defer rdb.Close()
		limitStore = middlewares.NewRedisStore(rdb)
		logger.Log.Infof("Rate limiting backed by Redis at %s", rateLimitRedisAddr)
	} else {
		memStore := middlewares.NewMemoryStore()
		defer memStore.Stop()
		limitStore = memStore
	}

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	eventReadRepo := repositories.NewEventReadRepository(db)
	eventWriteRepo := repositories.NewEventWriteRepository(db)

	// Initialize services
	userService := services.NewUserService(userReadRepo, userWriteRepo)
	eventService := services.NewEventService(eventReadRepo, eventWriteRepo, userReadRepo)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.RateLimit(limitStore, int64(rateLimitMax), time.Duration(rateLimitWindowSec)*time.Second))

	r.Get("/", handlers.NewHealthHandler())

	r.Route("/users", func(r chi.Router) {
		r.Post("/", handlers.NewCreateUserHandler(userService))
		r.Get("/", handlers.NewListUsersHandler(userService))
		r.Get("/{id}", handlers.NewGetUserHandler(userService))
		r.Put("/{id}", handlers.NewUpdateUserHandler(userService))
		r.Delete("/{id}", handlers.NewDeleteUserHandler(userService))
	})

	r.Route("/events", func(r chi.Router) {
		r.Post("/", handlers.NewCreateEventHandler(eventService))
		r.Get("/", handlers.NewListEventsHandler(eventService))
		r.Get("/{id}", handlers.NewGetEventHandler(eventService))
		r.Put("/{id}", handlers.NewUpdateEventHandler(eventService))
		r.Delete("/{id}", handlers.NewDeleteEventHandler(eventService))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
