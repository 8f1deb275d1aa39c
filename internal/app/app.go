package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/feynman-backend/internal/adapter/postgres"
	"github.com/heartmarshall/feynman-backend/internal/adapter/postgres/attempt"
	"github.com/heartmarshall/feynman-backend/internal/adapter/postgres/card"
	"github.com/heartmarshall/feynman-backend/internal/adapter/postgres/note"
	"github.com/heartmarshall/feynman-backend/internal/adapter/provider/grader"
	"github.com/heartmarshall/feynman-backend/internal/config"
	"github.com/heartmarshall/feynman-backend/internal/service/learning"
	"github.com/heartmarshall/feynman-backend/internal/service/stats"
	"github.com/heartmarshall/feynman-backend/internal/transport/middleware"
	"github.com/heartmarshall/feynman-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, wires the
// storage and grading adapters into the services, and serves the REST API
// until the context is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	cardRepo := card.New(pool)
	attemptRepo := attempt.New(pool)
	noteRepo := note.New(pool)
	txManager := postgres.NewTxManager(pool)

	graderClient := grader.NewClient(cfg.Grader, logger)
	defer graderClient.Close() //nolint:errcheck

	clock := clockwork.NewRealClock()

	learningSvc := learning.NewService(
		logger,
		cardRepo,
		attemptRepo,
		noteRepo,
		graderClient,
		txManager,
		clock,
		cfg.Learning,
		cfg.Grader.Timeout,
	)
	statsSvc := stats.NewService(logger, cardRepo, attemptRepo, clock, cfg.Stats)

	mux := rest.NewMux(
		rest.NewLearningHandler(learningSvc, logger),
		rest.NewStatsHandler(statsSvc, logger),
		rest.NewHealthHandler(pool, BuildVersion()),
	)

	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Identity,
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.IdleTimeout)
		defer limiter.Stop()
		mws = append(mws, limiter.Limit(cfg.Server.RateLimitPerMinute))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      middleware.Chain(mws...)(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
