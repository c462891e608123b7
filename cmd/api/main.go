package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/tu-wellness/booking-api/api/swagger"
	"github.com/tu-wellness/booking-api/internal/handler"
	"github.com/tu-wellness/booking-api/internal/middleware"
	"github.com/tu-wellness/booking-api/internal/repository"
	"github.com/tu-wellness/booking-api/internal/service"
	"github.com/tu-wellness/booking-api/pkg/cache"
	"github.com/tu-wellness/booking-api/pkg/config"
	"github.com/tu-wellness/booking-api/pkg/database"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
	"github.com/tu-wellness/booking-api/pkg/logger"
	corsmiddleware "github.com/tu-wellness/booking-api/pkg/middleware/cors"
	reqidmiddleware "github.com/tu-wellness/booking-api/pkg/middleware/requestid"
	"github.com/tu-wellness/booking-api/pkg/response"
)

// @title TU. Wellness Booking API
// @version 1.0.0
// @description Class schedule, availability and booking service for the TU. Wellness studio
// @BasePath /api/v1
// @schemes http

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

	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		logr.Sugar().Fatalw("invalid booking timezone", "timezone", cfg.Booking.Timezone, "error", err)
	}

	var store repository.BookingStore
	switch cfg.Booking.Store {
	case config.StorePostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("database connection failed", "error", err)
		}
		defer db.Close() //nolint:errcheck
		store = repository.NewPostgresBookingStore(db)
	default:
		store = repository.NewMemoryBookingStore()
	}
	logr.Sugar().Infow("booking store ready", "backend", cfg.Booking.Store)

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable; caching disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(client, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.ScheduleTTL, logr, true)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	catalogSvc := service.NewCatalogService(store, cfg.Booking.GroupCapacity, logr)
	eligibilitySvc := service.NewEligibilityService(cfg.Booking.AdvanceHours, loc, logr)
	scheduleSvc := service.NewScheduleService(catalogSvc, cacheSvc, cfg.Cache.ScheduleTTL, loc, logr)
	paymentSvc := service.NewPaymentService(cfg.Wompi, logr)
	bookingSvc := service.NewBookingService(catalogSvc, eligibilitySvc, store, paymentSvc, cacheSvc, metricsSvc, logr)
	webhookSvc := service.NewWebhookService(paymentSvc, bookingSvc, logr)
	authSvc := service.NewAuthService(cfg.JWT, cfg.Admin, logr)
	exportSvc := service.NewExportService(bookingSvc, nil, nil, logr)

	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	availabilityHandler := handler.NewAvailabilityHandler(bookingSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	webhookHandler := handler.NewWebhookHandler(webhookSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	adminHandler := handler.NewAdminHandler(bookingSvc, exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.New("NOT_FOUND", http.StatusNotFound, "route not found"))
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	paymentLimiter := middleware.NewRateLimiter(cfg.RateLimit.PaymentPerMinute, cfg.RateLimit.PaymentBurst)

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/classes", scheduleHandler.List)
		api.GET("/availability", availabilityHandler.Check)
		api.POST("/book", bookingHandler.Create)
		api.POST("/payments", paymentLimiter.Handler(), paymentHandler.CreateLink)
		api.POST("/webhooks/wompi", webhookHandler.Receive)
		api.GET("/webhooks/wompi", webhookHandler.Probe)
		api.POST("/auth/login", authHandler.Login)

		admin := api.Group("/admin", middleware.JWT(authSvc))
		{
			admin.GET("/bookings", adminHandler.ListBookings)
			admin.DELETE("/bookings/:id", adminHandler.CancelBooking)
			admin.GET("/classes/:classId/export", adminHandler.ExportRoster)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "timezone", cfg.Booking.Timezone)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
