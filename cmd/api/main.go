package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"juanride/internal/config"
	"juanride/internal/database"
	"juanride/internal/middleware"
	"juanride/internal/modules/admin"
	"juanride/internal/modules/auth"
	"juanride/internal/modules/booking"
	"juanride/internal/modules/catalog"
	"juanride/internal/modules/commission"
	"juanride/internal/modules/favorite"
	"juanride/internal/modules/notification"
	"juanride/internal/modules/payment"
	"juanride/internal/modules/review"
	"juanride/internal/modules/support"
	"juanride/internal/modules/verification"
	"juanride/internal/paymongo"
	"juanride/internal/pkg/cache"
	jwtsvc "juanride/internal/pkg/jwt"
	"juanride/internal/pkg/retry"
	"juanride/internal/repository"
	"juanride/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	supportRepo := repository.NewSupportRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Shared infrastructure
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	profileCache := cache.New(cache.NewRedisStore(rdb), cfg.ProfileCacheTTL, time.Now)

	store, err := storage.NewS3Storage(storage.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		log.Fatal(err)
	}

	gateway := paymongo.NewClient(cfg.GatewayBaseURL, cfg.GatewaySecretKey)

	hub := notification.NewHub()
	defer hub.Close()
	mailer := notification.NewSendgridMailer(cfg.SendgridAPIKey, cfg.EmailFrom, cfg.EmailFromName)

	// Services
	notificationService := notification.NewService(notificationRepo, userRepo, hub, mailer)
	commissionService := commission.NewService(commissionRepo, settingRepo)
	bookingService := booking.NewService(bookingRepo, vehicleRepo, commissionService, notificationService, cfg.CancelCutoff)
	paymentService := payment.NewService(gateway, paymentRepo, bookingRepo, notificationService)
	catalogService := catalog.NewService(vehicleRepo, maintenanceRepo, bookingRepo, store)
	verificationService := verification.NewService(documentRepo, userRepo, store, notificationService, cfg.PresignedTTL)
	reviewService := review.NewService(reviewRepo, bookingRepo, store)
	supportService := support.NewService(supportRepo)
	favoriteService := favorite.NewService(favoriteRepo, vehicleRepo)
	adminService := admin.NewService(userRepo, vehicleRepo, commissionService, settingRepo, notificationService)
	authService := auth.NewService(userRepo, j, profileCache, retry.Policy{
		MaxAttempts:    cfg.LoginMaxAttempts,
		AttemptTimeout: cfg.LoginAttemptWindow,
		Backoff:        200 * time.Millisecond,
	})

	poller := payment.NewPoller(
		paymentService,
		cfg.PollInterval,
		cfg.PollDeadline,
		paymentService.HandlePaid,
		paymentService.HandleFailed,
	)
	defer poller.Stop()

	// Handlers
	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	bookingHandler := booking.NewHandler(bookingService)
	paymentHandler := payment.NewHandler(paymentService, poller, gateway, cfg.AppBaseURL)
	commissionHandler := commission.NewHandler(commissionService)
	verificationHandler := verification.NewHandler(verificationService)
	notificationHandler := notification.NewHandler(notificationService, hub)
	supportHandler := support.NewHandler(supportService)
	reviewHandler := review.NewHandler(reviewService)
	favoriteHandler := favorite.NewHandler(favoriteService)
	adminHandler := admin.NewHandler(adminService)

	r := gin.New()
	r.Use(gin.Logger(), middleware.CORS(), middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// Public endpoints. Optional auth lets the access check see the
		// caller's role when a token is present.
		public := v1.Group("/")
		public.Use(middleware.OptionalJWTAuth(j))
		{
			authHandler.RegisterPublicRoutes(public)
			catalogHandler.RegisterPublicRoutes(public)
			reviewHandler.RegisterPublicRoutes(public)
		}

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
			favoriteHandler.RegisterRoutes(protected)

			owner := protected.Group("/owner")
			owner.Use(middleware.OwnerOnly())

			adminRG := protected.Group("/admin")
			adminRG.Use(middleware.AdminOnly())

			catalogHandler.RegisterOwnerRoutes(owner)
			commissionHandler.RegisterRoutes(owner, adminRG)
			verificationHandler.RegisterRoutes(protected, owner, adminRG)
			supportHandler.RegisterRoutes(protected, adminRG)
			adminHandler.RegisterRoutes(adminRG)
		}
	}

	log.Printf("level=info msg=api listening port=%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
