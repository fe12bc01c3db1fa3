package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/peakplay/coaching-api/api/swagger"
	"github.com/peakplay/coaching-api/internal/handler"
	"github.com/peakplay/coaching-api/internal/repository"
	"github.com/peakplay/coaching-api/internal/service"
	"github.com/peakplay/coaching-api/pkg/cache"
	"github.com/peakplay/coaching-api/pkg/config"
	"github.com/peakplay/coaching-api/pkg/database"
	"github.com/peakplay/coaching-api/pkg/logger"
)

// @title PeakPlay Coaching API
// @version 1.0.0
// @description Booking, replay review intake, payments, and back office for the coaching site
// @BasePath /api/v1
// @schemes https http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()
	metrics := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	friendCodeRepo := repository.NewFriendCodeRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	discordRepo := repository.NewDiscordRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	webhook := service.NewDiscordWebhook(cfg.Discord.WebhookURL)
	notifier := service.NewNotifierService(webhook, logr, metrics)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "coaching-api",
		Audience:           []string{"coaching-admin"},
	})
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, validate, logr)
	bookingSvc := service.NewBookingService(bookingRepo, availabilityRepo, notifier, validate, logr, metrics)
	submissionSvc := service.NewSubmissionService(submissionRepo, notifier, validate, logr, metrics)
	gateway := service.NewMidtransGateway(cfg.Payment.ServerKey, cfg.Payment.Production)
	paymentSvc := service.NewPaymentService(paymentRepo, submissionRepo, gateway, validate, logr, metrics)
	friendCodeSvc := service.NewFriendCodeService(friendCodeRepo, submissionRepo, notifier, validate, logr)
	blogSvc := service.NewBlogService(blogRepo, validate, logr)
	seoSvc := service.NewSEOService(blogRepo, cacheRepo, cfg.SiteURL, cfg.Sitemap.CacheTTL, logr)
	contactSvc := service.NewContactService(notifier, validate, logr)
	discordSvc := service.NewDiscordService(discordRepo, service.DiscordOAuthConfig{
		ClientID:     cfg.Discord.ClientID,
		ClientSecret: cfg.Discord.ClientSecret,
		RedirectURL:  cfg.Discord.RedirectURL,
		StateSecret:  cfg.Discord.StateSecret,
		StateTTL:     cfg.Discord.StateTTL,
	}, logr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifier.Start(ctx)
	defer notifier.Stop()

	reminder := service.NewReminderScheduler(bookingRepo, notifier, service.ReminderConfig{
		Interval:  cfg.Reminder.Interval,
		Tolerance: cfg.Reminder.Tolerance,
	}, logr, metrics)
	if cfg.Reminder.Enabled {
		reminder.Start(ctx)
		defer reminder.Stop()
	}

	r := handler.NewRouter(handler.RouterDeps{
		Logger:         logr,
		Metrics:        metrics,
		AuthService:    authSvc,
		Auth:           handler.NewAuthHandler(authSvc),
		Availability:   handler.NewAvailabilityHandler(availabilitySvc),
		Bookings:       handler.NewBookingHandler(bookingSvc),
		Submissions:    handler.NewSubmissionHandler(submissionSvc),
		Payments:       handler.NewPaymentHandler(paymentSvc, cfg.Payment.SuccessURL, cfg.Payment.CancelURL),
		FriendCodes:    handler.NewFriendCodeHandler(friendCodeSvc),
		Blog:           handler.NewBlogHandler(blogSvc),
		Contact:        handler.NewContactHandler(contactSvc, notifier),
		Discord:        handler.NewDiscordHandler(discordSvc, cfg.SiteURL),
		SEO:            handler.NewSEOHandler(seoSvc),
		Observability:  handler.NewMetricsHandler(metrics, db, redisPinger{client: redisClient}),
		RateCounter:    cacheRepo,
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		ContactLimit:   int64(cfg.Contact.RateLimit),
		ContactWindow:  cfg.Contact.RateLimitWindow,
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

// redisPinger adapts the redis client to the readiness probe interface.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping() error {
	return p.client.Ping(context.Background()).Err()
}
