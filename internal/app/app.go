package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"

	"routerchat/backend/internal/api"
	"routerchat/backend/internal/config"
	"routerchat/backend/internal/database"
	"routerchat/backend/internal/llm"
	"routerchat/backend/internal/lock"
	"routerchat/backend/internal/repository"
	"routerchat/backend/internal/service"
	"routerchat/backend/internal/storage"
)

const shutdownTimeout = 30 * time.Second

// App holds the wired dependencies of a running server.
type App struct {
	Config *config.Config
	DB     *sql.DB
	Server *http.Server

	redis *redis.Client
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	logFile := setupLogger(cfg.LogLevel, cfg.LogFile)
	if logFile != nil {
		defer logFile.Close()
	}

	logConfigSource(cfg.ConfigFile)

	if cfg.OpenRouterAPIKey == "" {
		slog.Warn("OPENROUTER_API_KEY is not set, completions will be rejected upstream")
	}

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort)
		serverErr <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return 1
		}
	}

	return 0
}

// NewApp opens the database and blob store and wires services, handlers and
// the HTTP server.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)

	app := &App{Config: cfg, DB: db}
	if err := app.wire(); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) wire() error {
	cfg := a.Config

	blobs, err := storage.NewLocalStore(cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("failed to initialize attachment storage: %w", err)
	}

	catalog, err := config.LoadModelCatalog(cfg.OpenRouterModelsFile)
	if err != nil {
		return fmt.Errorf("failed to load model catalog: %w", err)
	}
	slog.Info("Loaded model catalog", "models", len(catalog.List()))

	var locker lock.Locker
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rdb, err := lock.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		a.redis = rdb
		locker = lock.NewRedisLocker(rdb, lockTTL(cfg))
		slog.Info("Using Redis for chat locks", "addr", cfg.RedisAddr)
	} else {
		locker = lock.NewMemoryLocker()
	}

	provider := llm.NewOpenRouterProvider(llm.Options{
		BaseURL:    cfg.OpenRouterAPIURL,
		APIKey:     cfg.OpenRouterAPIKey,
		Timeout:    cfg.OpenRouterTimeout,
		MaxRetries: cfg.OpenRouterMaxRetries,
		MaxTokens:  catalog.MaxTokens,
		Referer:    cfg.AppURL,
		Title:      cfg.AppName,
		RateLimit:  cfg.OpenRouterRateLimit,
	})

	repo := repository.NewSQLiteRepository(a.DB)
	chatService := service.NewChatService(repo, provider, blobs, locker, service.ChatServiceOptions{
		DefaultModel:       cfg.OpenRouterDefaultModel,
		MaxAttachmentBytes: cfg.MaxAttachmentBytes,
		IdempotencyTTL:     cfg.IdempotencyTTL,
	})
	modelService := service.NewModelService(catalog)

	signer, err := api.NewAttachmentSigner(cfg.AttachmentURLSecret, cfg.AttachmentURLTTL)
	if err != nil {
		return err
	}

	chatHandler := api.NewChatHandler(chatService, signer, cfg.MaxRequestBytes)
	modelHandler := api.NewModelHandler(modelService)
	router := api.NewRouter(chatHandler, modelHandler, cfg.DefaultUserID)

	a.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled: a send waits on the upstream with retries.
		IdleTimeout:       120 * time.Second,
	}
	return nil
}

// Close releases the database and Redis connections.
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// lockTTL outlives the slowest send: every attempt timing out plus the
// backoff between them.
func lockTTL(cfg *config.Config) time.Duration {
	retries := cfg.OpenRouterMaxRetries
	if retries < 1 {
		retries = 1
	}
	ttl := cfg.OpenRouterTimeout * time.Duration(retries)
	ttl += time.Duration(retries) * 10 * time.Second
	return ttl + time.Minute
}

func logConfigSource(configFileUsed string) {
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

// setupLogger installs a JSON slog logger on stdout. When logFile is set the
// output is also written to a rotating file, which the caller closes.
func setupLogger(logLevel, logFile string) io.Closer {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	var rotator *lumberjack.Logger
	if logFile != "" {
		rotator = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotator)
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if rotator == nil {
		return nil
	}
	return rotator
}
