// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Hearth HTTP API server.
//
// # Startup Sequence
//
//  1. Load .env (development convenience) and initialize structured logging.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/taibuivan/hearth/internal/api"
	"github.com/taibuivan/hearth/internal/core/chat"
	"github.com/taibuivan/hearth/internal/core/diary"
	"github.com/taibuivan/hearth/internal/core/habit"
	"github.com/taibuivan/hearth/internal/core/persona"
	"github.com/taibuivan/hearth/internal/platform/config"
	"github.com/taibuivan/hearth/internal/platform/constants"
	"github.com/taibuivan/hearth/internal/platform/migration"
	pgstore "github.com/taibuivan/hearth/internal/platform/postgres"
	redisstore "github.com/taibuivan/hearth/internal/platform/redis"
	"github.com/taibuivan/hearth/internal/platform/sec"
	"github.com/taibuivan/hearth/internal/users/auth"
)

func main() {
	// ── 1. Environment & Logger ───────────────────────────────────────────
	// .env is optional; real deployments inject environment variables.
	_ = godotenv.Load()

	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Hearth] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("chat_provider", cfg.ChatProvider),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	authService := auth.NewService(userRepository, resetTokenRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	replyPolicy := buildReplyPolicy(cfg, log)

	messageRepository := chat.NewMessageRepository(pool)
	chatService := chat.NewService(messageRepository, profileSource{users: userRepository}, replyPolicy, log)
	chatHandler := chat.NewHandler(chatService)

	diaryRepository := diary.NewEntryRepository(pool)
	diaryService := diary.NewService(diaryRepository, log)
	diaryHandler := diary.NewHandler(diaryService)

	habitRepository := habit.NewEntryRepository(pool)
	habitService := habit.NewService(habitRepository, time.Local, log)
	habitHandler := habit.NewHandler(habitService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Chat:      chatHandler,
		Diary:     diaryHandler,
		Habit:     habitHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// buildReplyPolicy selects the chat reply backend from configuration.
//
// The canned phrase bank is the default; the model-backed policy is opt-in
// and always degrades to the phrase bank on failure.
func buildReplyPolicy(cfg *config.Config, log *slog.Logger) persona.ResponsePolicy {
	phraseBank := persona.NewPhraseBank()

	if cfg.ChatProvider == "openai" && cfg.OpenAIKey != "" {
		log.Info("chat_policy_selected", slog.String("policy", "openai"), slog.String("model", cfg.OpenAIModel))
		return persona.NewModelPolicy(cfg.OpenAIKey, cfg.OpenAIModel, phraseBank)
	}

	log.Info("chat_policy_selected", slog.String("policy", "canned"))
	return phraseBank
}

// profileSource adapts the account repository to the chat domain's
// personalization contract.
type profileSource struct {
	users auth.UserRepository
}

func (source profileSource) ProfileFor(ctx context.Context, userID string) (persona.Profile, error) {
	user, err := source.users.FindByID(ctx, userID)
	if err != nil {
		return persona.Profile{}, err
	}

	return persona.Profile{
		UserName:    user.Name,
		MotherName:  user.MotherName,
		FatherName:  user.FatherName,
		SiblingName: user.SiblingName,
		SiblingType: user.SiblingType,
		Goals:       user.Goals,
		Interests:   user.Interests,
	}, nil
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
