// File: ciba/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"ciba/config"
	"ciba/cron"
	"ciba/database"
	bookingRepoPkg "ciba/database/repository/booking"
	newsletterRepoPkg "ciba/database/repository/newsletter"
	"ciba/handlers"
	"ciba/metrics"
	"ciba/middleware"
	"ciba/routes"
	"ciba/services/clinic"
	"ciba/services/newsletter"
	"ciba/services/notification"
	"ciba/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	metrics.Register()

	mongoClient, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}

	cacheClient, err := utils.NewCacheClient()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to Redis: %v", err)
	}
	utils.StartHealthMonitor(cacheClient, mongoClient)

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(mongoClient, config.AppConfig.DatabaseName)
	if err := bookingRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	subscriberRepo := newsletterRepoPkg.NewMongoSubscriberRepo(mongoClient, config.AppConfig.DatabaseName)
	if err := subscriberRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure subscriber indexes: %v", err)
	}

	// notification integrations; each is optional per deployment.
	var mailer notification.Mailer
	if config.AppConfig.SMTPHost != "" {
		mailer = notification.NewSMTPMailer(
			config.AppConfig.SMTPHost,
			config.AppConfig.SMTPPort,
			config.AppConfig.SMTPUser,
			config.AppConfig.SMTPPassword,
			config.AppConfig.SMTPFrom,
		)
	} else {
		logger.Info("main: SMTP not configured, confirmation mail disabled")
	}

	var calendarSvc notification.CalendarService
	if config.AppConfig.GoogleCredentialsFile != "" && config.AppConfig.GoogleCalendarID != "" {
		calendarSvc, err = notification.NewGoogleCalendarService(
			context.Background(),
			config.AppConfig.GoogleCredentialsFile,
			config.AppConfig.GoogleCalendarID,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Google Calendar: %v", err)
		}
	} else {
		logger.Info("main: Google Calendar not configured, session events disabled")
	}

	queueOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	dispatcher := notification.NewAsynqDispatcher(queueOpts)
	defer dispatcher.Close()

	notifier := &notification.BookingNotifier{
		Calendar: calendarSvc,
		Mailer:   mailer,
		Logger:   logger,
	}
	worker := cron.StartNotificationWorker(notifier, logger)

	// services.
	mailRate := config.AppConfig.NewsletterRatePerMin
	if mailRate <= 0 {
		mailRate = 30
	}
	newsletterService := &newsletter.DefaultNewsletterService{
		Repo:    subscriberRepo,
		Mailer:  mailer,
		Limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(mailRate)), 1),
		Logger:  logger,
	}

	clinicService := &clinic.DefaultClinicBookingService{
		Repo:       bookingRepo,
		Slots:      clinic.DefaultSlots,
		Dispatcher: dispatcher,
		Newsletter: newsletterService,
		Cache:      cacheClient,
		Logger:     logger,
	}

	clinicHandler := handlers.NewClinicHandler(clinicService, logger)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService, config.AppConfig.AdminToken, logger)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, clinicHandler, newsletterHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
