package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	userserver "github.com/Apurer/go-gin-users-api/go"
	usermemory "github.com/Apurer/go-gin-users-api/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/go-gin-users-api/internal/domains/users/adapters/observability"
	userapp "github.com/Apurer/go-gin-users-api/internal/domains/users/application"
	"github.com/Apurer/go-gin-users-api/internal/platform/httpmw"
	platformobservability "github.com/Apurer/go-gin-users-api/internal/platform/observability"
)

// Run boots the users HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Options{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		LogLevel:    cfg.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	router, err := NewHandler(ctx, cfg, instruments)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("users API listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("users API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down users API", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// NewHandler assembles the repository, services and middleware into a gin engine.
func NewHandler(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*gin.Engine, error) {
	logger := instruments.Logger
	if logger == nil {
		logger = slog.Default()
	}

	userRepo := usermemory.NewRepository()
	if cfg.UsersSeedFile != "" {
		seed, err := usermemory.LoadSeed(cfg.UsersSeedFile)
		if err != nil {
			return nil, err
		}
		if err := userRepo.Seed(ctx, seed); err != nil {
			return nil, err
		}
		logger.Info("user store seeded", slog.String("file", cfg.UsersSeedFile), slog.Int("count", len(seed)))
	}

	coreUserService := userapp.NewService(userRepo, userapp.WithUpdatePolicy(cfg.UsersUpdatePolicy))
	userService := userobs.New(
		coreUserService,
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)

	handlers := userserver.ApiHandleFunctions{
		UserAPI:    userserver.NewUserAPI(userService),
		DefaultAPI: userserver.NewDefaultAPI(),
	}

	router := gin.New()
	router.Use(
		userserver.Recovery(),
		otelgin.Middleware(cfg.ServiceName),
		httpmw.RequestID(),
		httpmw.AccessLog(logger),
		httpmw.CORS(cfg.CORSAllowedOrigins),
	)
	if cfg.RateLimitEnabled() {
		router.Use(httpmw.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
		logger.Info("rate limiting enabled", slog.Float64("rps", cfg.RateLimitRPS), slog.Int("burst", cfg.RateLimitBurst))
	}
	return userserver.NewRouterWithGinEngine(router, handlers), nil
}
