package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lingopath/backend/internal/adapter/postgres"
	"github.com/lingopath/backend/internal/adapter/postgres/gamestate"
	"github.com/lingopath/backend/internal/adapter/postgres/progress"
	"github.com/lingopath/backend/internal/adapter/postgres/reviewitem"
	"github.com/lingopath/backend/internal/adapter/postgres/reviewlog"
	settingsrepo "github.com/lingopath/backend/internal/adapter/postgres/settings"
	"github.com/lingopath/backend/internal/auth"
	"github.com/lingopath/backend/internal/config"
	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/internal/service/gamification"
	"github.com/lingopath/backend/internal/service/recommend"
	"github.com/lingopath/backend/internal/service/srs"
	"github.com/lingopath/backend/internal/service/user"
	"github.com/lingopath/backend/internal/transport/middleware"
	"github.com/lingopath/backend/internal/transport/rest"
)

// Services bundles the wired application services.
type Services struct {
	SRS          *srs.Service
	Gamification *gamification.Service
	Recommend    *recommend.Service
	User         *user.Service
}

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories and services, and serves HTTP until the
// context is canceled or a termination signal arrives.
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

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	services := BuildServices(logger, pool, cfg)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
	)(newRouter(logger, pool, services))

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}

// BuildServices wires repositories into services against the given pool.
func BuildServices(logger *slog.Logger, pool *pgxpool.Pool, cfg *config.Config) *Services {
	itemRepo := reviewitem.New(pool)
	logRepo := reviewlog.New(pool)
	stateRepo := gamestate.New(pool)
	settingsRepo := settingsrepo.New(pool)
	progressRepo := progress.New(pool)
	txManager := postgres.NewTxManager(pool)

	srsService := srs.NewService(logger, itemRepo, logRepo, settingsRepo, txManager, domain.SRSConfig{
		DefaultEaseFactor: cfg.SRS.DefaultEaseFactor,
		MinEaseFactor:     cfg.SRS.MinEaseFactor,
		FailurePenalty:    cfg.SRS.FailurePenalty,
		QueueLimit:        cfg.SRS.QueueLimit,
	})

	return &Services{
		SRS: srsService,
		Gamification: gamification.NewService(logger, stateRepo, settingsRepo, txManager, gamification.Config{
			MaxAwardAmount: cfg.Gamification.MaxAwardAmount,
		}),
		Recommend: recommend.NewService(logger, itemRepo, progressRepo, srsService),
		User:      user.NewService(logger, settingsRepo),
	}
}

func newRouter(logger *slog.Logger, pool *pgxpool.Pool, services *Services) *http.ServeMux {
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())
	reviewHandler := rest.NewReviewHandler(services.SRS, logger)
	gamificationHandler := rest.NewGamificationHandler(services.Gamification, logger)
	recommendHandler := rest.NewRecommendHandler(services.Recommend, logger)
	progressHandler := rest.NewProgressHandler(services.Recommend, logger)
	settingsHandler := rest.NewSettingsHandler(services.User, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)

	mux.HandleFunc("POST /api/items", reviewHandler.LearnItem)
	mux.HandleFunc("GET /api/items", reviewHandler.ListItems)
	mux.HandleFunc("GET /api/items/{id}/history", reviewHandler.ItemHistory)
	mux.HandleFunc("POST /api/items/{id}/reset", reviewHandler.ResetItem)
	mux.HandleFunc("DELETE /api/items/{id}", reviewHandler.RemoveItem)
	mux.HandleFunc("GET /api/queue", reviewHandler.GetQueue)
	mux.HandleFunc("GET /api/queue/summary", reviewHandler.QueueSummary)
	mux.HandleFunc("POST /api/reviews", reviewHandler.RecordReview)
	mux.HandleFunc("GET /api/stats/modules", reviewHandler.ModuleStats)

	mux.HandleFunc("GET /api/gamification", gamificationHandler.State)
	mux.HandleFunc("GET /api/gamification/streak", gamificationHandler.Streak)
	mux.HandleFunc("POST /api/gamification/awards", gamificationHandler.Award)
	mux.HandleFunc("PUT /api/gamification/goal", gamificationHandler.UpdateGoal)

	mux.HandleFunc("GET /api/recommendations", recommendHandler.Suggest)

	mux.HandleFunc("POST /api/paths/{id}/advance", progressHandler.AdvanceMilestone)
	mux.HandleFunc("PUT /api/tracks/{id}/progress", progressHandler.UpdateTrack)

	mux.HandleFunc("GET /api/settings", settingsHandler.Get)
	mux.HandleFunc("PATCH /api/settings", settingsHandler.Update)

	return mux
}
