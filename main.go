package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/draftdesk/draftdesk/config"
	"github.com/draftdesk/draftdesk/internal/email"
	"github.com/draftdesk/draftdesk/internal/generation"
	"github.com/draftdesk/draftdesk/internal/handler"
	"github.com/draftdesk/draftdesk/internal/repository/sqlite"
	"github.com/draftdesk/draftdesk/internal/service"
	"github.com/draftdesk/draftdesk/internal/session"
	"github.com/lmittmann/tint"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())
	slog.SetDefault(logger)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	tokens := service.NewTokenService(cfg.SecretKey)
	authService := service.NewAuthService(db.Users(), tokens, cfg.BcryptCost)
	llm := generation.NewClient(cfg.GenerationAPIURL, cfg.GenerationAPIKey, cfg.GenerationModel)
	composeService := service.NewComposeService(llm, db.Reports())

	sessions := session.NewManager(session.NewMemoryStore(), cfg.CookieSecure)
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	// Credential endpoints share one limiter: burst of 5, refill every 2s per client.
	limiter := service.NewTokenBucket(0.5, 5)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, composeService, sessions, sender, limiter, cfg.BaseURL)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// newLogger returns a tinted handler for local development and JSON
// elsewhere.
func newLogger(env string, level slog.Level) *slog.Logger {
	if env == "local" {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: level}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
