// Package server assembles repositories, services and handlers into the gin router.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"servicehub/internal/config"
	"servicehub/internal/middleware"
	"servicehub/internal/modules/account"
	"servicehub/internal/modules/booking"
	"servicehub/internal/modules/catalog"
	"servicehub/internal/modules/chat"
	"servicehub/internal/modules/complaint"
	"servicehub/internal/modules/notification"
	"servicehub/internal/modules/review"
	"servicehub/internal/pkg/jwt"
	"servicehub/internal/pkg/logger"
	"servicehub/internal/pkg/response"
	"servicehub/internal/repository"
	"servicehub/internal/storage"
)

type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	JWT    *jwt.Service
	Redis  *redis.Client
	Store  storage.Store
}

func NewRouter(d Deps) *gin.Engine {
	log := logger.OrNop(d.Log)
	cfg := d.Config

	accountRepo := repository.NewAccountRepository(d.DB)
	serviceRepo := repository.NewServiceRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	chatRepo := repository.NewChatRepository(d.DB)
	reviewRepo := repository.NewReviewRepository(d.DB)
	complaintRepo := repository.NewComplaintRepository(d.DB)
	notificationRepo := repository.NewNotificationRepository(d.DB)

	notificationService := notification.NewService(notificationRepo, log.Named("notification"))
	accountService := account.NewService(accountRepo, notificationService, log.Named("account"))
	catalogService := catalog.NewService(serviceRepo, accountRepo, log.Named("catalog"))
	bookingService := booking.NewService(bookingRepo, serviceRepo, chatRepo, notificationService, log.Named("booking"))
	chatService := chat.NewService(chatRepo, accountRepo, bookingRepo)
	reviewService := review.NewService(reviewRepo, bookingRepo, serviceRepo, notificationService, cfg.Reviews, log.Named("review"))

	var uploader complaint.AttachmentStore
	if d.Store != nil {
		uploader = storage.NewUploader(d.Store, cfg.Storage.MaxAttachmentBytes)
	}
	complaintService := complaint.NewService(complaintRepo, bookingRepo, accountRepo, uploader, notificationService, log.Named("complaint"))

	accountHandler := account.NewHandler(accountService)
	catalogHandler := catalog.NewHandler(catalogService)
	bookingHandler := booking.NewHandler(bookingService)
	chatHandler := chat.NewHandler(chatService)
	reviewHandler := review.NewHandler(reviewService)
	complaintHandler := complaint.NewHandler(complaintService)
	notificationHandler := notification.NewHandler(notificationService)

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", health(d.DB))

	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "local" {
		if strings.HasPrefix(cfg.Storage.UploadsPublicBase, "/") {
			r.Static(cfg.Storage.UploadsPublicBase, cfg.Storage.UploadsDir)
		}
	}

	v1 := r.Group("/api/v1")
	{
		catalogHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(
			middleware.JWTAuth(d.JWT),
			middleware.RateLimit(d.Redis, cfg.RateLimitRequests, cfg.RateLimitWindow, "servicehub:rl", log.Named("ratelimit")),
		)
		{
			accountHandler.RegisterRoutes(protected)
			catalogHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
			complaintHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			_ = c.Error(err)
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is unreachable")
			return
		}
		response.OK(c, http.StatusOK, "", gin.H{"status": "ok"})
	}
}
