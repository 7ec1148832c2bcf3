package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/campus-portal/api/swagger"
	"github.com/noah-isme/campus-portal/internal/handler"
	internalmiddleware "github.com/noah-isme/campus-portal/internal/middleware"
	"github.com/noah-isme/campus-portal/internal/models"
	"github.com/noah-isme/campus-portal/internal/portalapi"
	"github.com/noah-isme/campus-portal/internal/repository"
	"github.com/noah-isme/campus-portal/internal/service"
	"github.com/noah-isme/campus-portal/pkg/cache"
	"github.com/noah-isme/campus-portal/pkg/config"
	"github.com/noah-isme/campus-portal/pkg/database"
	"github.com/noah-isme/campus-portal/pkg/jobs"
	"github.com/noah-isme/campus-portal/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-portal/pkg/middleware/requestid"
)

// @title Campus Portal Console API
// @version 1.0.0
// @description Operator console and public pages over the campus content API.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, falling back to in-memory stores", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
	}

	var db *sqlx.DB
	if cfg.Activity.Enabled {
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
		}
		defer db.Close() //nolint:errcheck
	}

	metrics := service.NewMetricsService()

	api, err := portalapi.New(portalapi.Options{
		BaseURL:  cfg.Upstream.BaseURL,
		Timeout:  cfg.Upstream.Timeout,
		Observer: metrics,
		Logger:   logger.Component(logr, "portalapi"),
	})
	if err != nil {
		logr.Sugar().Fatalw("failed to build content API client", "error", err)
	}

	var (
		sessions  service.SessionStore
		cacheRepo service.CacheRepository
	)
	if redisClient != nil {
		sessions = repository.NewRedisSessionStore(redisClient, cfg.Session.MarkerKey)
		cacheRepo = repository.NewContentCacheRepository(redisClient, "portal:")
	} else {
		sessions = repository.NewMemorySessionStore()
		cacheRepo = repository.NewMemoryCacheRepository()
	}
	contentCache := service.NewCacheService(cacheRepo, metrics, cfg.PublicCache.TTL, logger.Component(logr, "cache"), cfg.PublicCache.Enabled)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var activity *service.ActivityService
	if db != nil {
		activity = service.NewActivityService(repository.NewActivityRepository(db), jobs.QueueConfig{
			Workers:    cfg.Activity.Workers,
			MaxRetries: cfg.Activity.Retries,
		}, logger.Component(logr, "activity"))
		activity.Start(rootCtx)
		defer activity.Stop()
	}

	news := service.NewNewsService(api, contentCache, logger.Component(logr, "news"))
	admissions := service.NewAdmissionsService(api, contentCache, logger.Component(logr, "admissions"))

	consoleCfg := service.AdminServiceConfig{
		API:      api,
		Sessions: sessions,
		Alerts: service.NewAlertQueue(service.AlertQueueConfig{
			DefaultDuration: cfg.Alerts.DefaultDuration,
			Metrics:         metrics,
		}),
		Validator:       validator.New(),
		Logger:          logger.Component(logr, "console"),
		OnContentChange: news.Invalidate,
	}
	if activity != nil {
		consoleCfg.Activity = activity
	}
	console := service.NewAdminService(consoleCfg)

	heartbeat := service.NewSessionHeartbeat(console, cfg.Session.HeartbeatSchedule, metrics, logger.Component(logr, "heartbeat"))
	if err := heartbeat.Start(); err != nil {
		logr.Sugar().Fatalw("failed to start session heartbeat", "error", err)
	}
	defer heartbeat.Stop()

	tokens := service.NewTokenService(service.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	adminHandler := handler.NewAdminHandler(console, tokens, activityLister(activity), service.NewExportService())
	metricsHandler := handler.NewMetricsHandler(metrics, readinessChecks(redisClient, db))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Metrics(metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Routes{
		Admin:        adminHandler,
		Public:       handler.NewPublicHandler(news, admissions),
		ConsoleAuth:  internalmiddleware.ConsoleAuth(tokens),
		RequireLogin: internalmiddleware.RequireSession(console),
	}.Register(r.Group(cfg.APIPrefix))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-rootCtx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}

// activityLister keeps a nil *ActivityService from becoming a non-nil interface value.
func activityLister(svc *service.ActivityService) interface {
	List(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityLog, error)
} {
	if svc == nil {
		return nil
	}
	return svc
}

func readinessChecks(redisClient *redis.Client, db *sqlx.DB) map[string]handler.ReadinessCheck {
	checks := map[string]handler.ReadinessCheck{}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	if db != nil {
		checks["postgres"] = db.PingContext
	}
	return checks
}
