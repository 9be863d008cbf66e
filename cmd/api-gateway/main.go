package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/lms-ai-api/api/swagger"
	"github.com/noah-isme/lms-ai-api/internal/handler"
	internalmiddleware "github.com/noah-isme/lms-ai-api/internal/middleware"
	"github.com/noah-isme/lms-ai-api/internal/repository"
	"github.com/noah-isme/lms-ai-api/internal/service"
	"github.com/noah-isme/lms-ai-api/internal/state"
	"github.com/noah-isme/lms-ai-api/pkg/config"
	"github.com/noah-isme/lms-ai-api/pkg/export"
	"github.com/noah-isme/lms-ai-api/pkg/gemini"
	"github.com/noah-isme/lms-ai-api/pkg/kvstore"
	"github.com/noah-isme/lms-ai-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lms-ai-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lms-ai-api/pkg/middleware/requestid"
)

// @title LMS AI API
// @version 1.0.0
// @description AI-assisted learning management system
// @BasePath /
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

	ctx := context.Background()

	metricsSvc := service.NewMetricsService()

	backend, closer, err := openBackend(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open state store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer closer.Close() //nolint:errcheck

	store := kvstore.New(backend, logr.Named("kvstore"), kvstore.WithFailureHook(metricsSvc.RecordStoreFailure))
	sessionRepo := repository.NewSessionRepository(store, cfg.JWT.SessionTTL)

	var aiClient gemini.Client
	if cfg.AI.APIKey != "" {
		aiClient, err = gemini.NewClient(gemini.Config{
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
			BaseURL: cfg.AI.BaseURL,
			Timeout: cfg.AI.Timeout,
		})
		if err != nil {
			logr.Fatal("failed to init AI client", zap.Error(err))
		}
	} else {
		logr.Warn("GEMINI_API_KEY not set; AI features will report failures")
	}

	validate := validator.New()
	aiSvc := service.NewAIService(aiClient, metricsSvc, validate, logr.Named("ai"))
	notificationSvc := service.NewNotificationService(cfg.Notifications.TTL, logr.Named("notifications"))

	container := state.New(ctx, state.Stores{
		Users:       repository.NewUserRepository(store),
		Courses:     repository.NewCourseRepository(store),
		Submissions: repository.NewSubmissionRepository(store),
		Sessions:    sessionRepo,
	}, aiSvc, state.WithNotifier(notificationSvc), state.WithLogger(logr.Named("state")))

	authSvc := service.NewAuthService(container, notificationSvc, validate, logr.Named("auth"), service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		SessionTTL: cfg.JWT.SessionTTL,
		Issuer:     cfg.JWT.Issuer,
	})
	reportSvc := service.NewReportService(aiSvc, container, logr.Named("reports"))
	exportSvc := service.NewExportService(container, logr.Named("export"), export.NewCSVExporter(), export.NewPDFExporter())

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(internalmiddleware.Metrics(metricsSvc))
	}

	metricsHandler := handler.NewMetricsHandler(metricsSvc, nil)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(strings.TrimRight(cfg.APIPrefix, "/"))
	handler.RegisterRoutes(api, internalmiddleware.JWT(authSvc), handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc, notificationSvc),
		Users:         handler.NewUserHandler(container, notificationSvc),
		Courses:       handler.NewCourseHandler(container, reportSvc, notificationSvc),
		Submissions:   handler.NewSubmissionHandler(container, notificationSvc),
		Reports:       handler.NewReportHandler(reportSvc, exportSvc, notificationSvc),
		Views:         handler.NewViewHandler(container, notificationSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
