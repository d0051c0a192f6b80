package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/course-platform/internal/config"
	"github.com/prperemyshlev/course-platform/internal/handler"
	"github.com/prperemyshlev/course-platform/internal/repository"
	"github.com/prperemyshlev/course-platform/internal/service"
	"github.com/prperemyshlev/course-platform/internal/utils"
	"github.com/prperemyshlev/course-platform/pkg/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	repos  *repository.Repositories
	server *http.Server
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	db := infra.Postgres().Gorm
	repos := repository.NewRepositories(db)
	uow := repository.NewUnitOfWork(db)
	logger := infra.Logger()

	authService := service.NewAuthService(uow, utils.NewTokenIssuer(cfg.JWT), cfg.Security.BCryptCost, logger)
	courseService := service.NewCourseService(uow, logger)
	lessonService := service.NewLessonService(uow, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(handler.LoggerMiddleware(logger))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	router.GET("/metrics", observability.PrometheusHandler(infra.MetricsHandler()))
	router.GET("/health", NewHealthChecker(infra).Handler)

	handler.RegisterRoutes(router.Group("/api"),
		handler.Handlers{
			Auth:   handler.NewAuthHandler(authService),
			Course: handler.NewCourseHandler(courseService),
			Lesson: handler.NewLessonHandler(lessonService),
		},
		handler.AuthMiddleware(authService),
		&handler.RateLimit{
			Limiter:  service.NewRateLimiter(infra.Redis().Client),
			Requests: cfg.Security.RateLimitRequests,
			Window:   cfg.Security.RateLimitWindow.Duration,
		},
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		repos:  repos,
		server: srv,
	}
}

func (a *App) Run(ctx context.Context) error {
	logger := a.infra.Logger()

	if err := seedTestUser(ctx, a.repos.User, a.config.Seed, a.config.Security.BCryptCost, logger); err != nil {
		logger.Error("Seeding failed", zap.Error(err))
	}

	if err := purgeExpiredTokens(ctx, a.repos.Token, time.Now(), logger); err != nil {
		logger.Warn("Token cleanup skipped", zap.Error(err))
	}

	errChan := make(chan error, 1)

	go func() {
		logger.Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		logger.Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		logger.Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// the server drains before its dependencies close
	if err := a.server.Shutdown(ctx); err != nil {
		a.infra.Logger().Error("HTTP server shutdown failed", zap.Error(err))
		return errors.Join(err, a.infra.Shutdown(ctx))
	}

	if err := a.infra.Shutdown(ctx); err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
