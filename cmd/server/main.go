package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/foodgram-api/internal/config"
	"github.com/yukikurage/foodgram-api/internal/database"
	"github.com/yukikurage/foodgram-api/internal/logging"
	"github.com/yukikurage/foodgram-api/internal/middleware"
	"github.com/yukikurage/foodgram-api/internal/server"
	"github.com/yukikurage/foodgram-api/internal/storage"
	"github.com/yukikurage/foodgram-api/internal/validation"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	if err := validation.RegisterWithGin(); err != nil {
		fatal("failed to register validators", err)
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		fatal("failed to connect to database", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		fatal("failed to run migrations", err)
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		fatal("failed to create session store", err)
	}

	images, err := storage.New(context.Background(), cfg)
	if err != nil {
		fatal("failed to create image storage", err)
	}

	deps := server.Dependencies{
		DB:           database.GetDB(),
		Logger:       logger,
		SessionStore: store,
		Images:       images,
		Metrics:      middleware.NewMetrics(),
	}
	if local, ok := images.(*storage.LocalStore); ok {
		deps.MediaRoute = cfg.MediaURL
		deps.MediaDir = local.Dir()
	}

	r := server.NewRouter(deps)

	// Start server
	logger.Info("server starting", "port", cfg.Port, "storage", cfg.StorageBackend, "sessions", cfg.SessionStore)
	if err := r.Run(":" + cfg.Port); err != nil {
		fatal("failed to start server", err)
	}
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "cookie":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			cfg.RedisPoolSize,
			"tcp",
			redisAddr,
			"", // username (empty for default user)
			"", // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
	}

	// Configure session options based on environment
	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	return store, nil
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
