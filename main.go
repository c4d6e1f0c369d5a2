package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barberbook/config"
	"barberbook/cron"
	"barberbook/database"
	blockedslotRepoPkg "barberbook/database/repository/blockedslot"
	loyaltyRepoPkg "barberbook/database/repository/loyalty"
	reservationRepoPkg "barberbook/database/repository/reservation"
	serviceRepoPkg "barberbook/database/repository/service"
	userRepoPkg "barberbook/database/repository/user"
	"barberbook/handlers"
	"barberbook/middleware"
	"barberbook/routes"
	"barberbook/services/loyalty"
	"barberbook/services/notification"
	"barberbook/services/scheduling"
	"barberbook/tasks"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	bookingLocation, err := time.LoadLocation(config.AppConfig.BookingTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid booking timezone %q: %v", config.AppConfig.BookingTimezone, err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	reservationRepo := reservationRepoPkg.NewMongoReservationRepo()
	blockedRepo := blockedslotRepoPkg.NewMongoBlockedSlotRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	loyaltyRepo := loyaltyRepoPkg.NewMongoLoyaltyRepo()

	// services.
	dispatcher := tasks.NewAsynqDispatcher()
	defer dispatcher.Close()

	schedulingService := &scheduling.DefaultSchedulingService{
		Reservations: reservationRepo,
		Blocked:      blockedRepo,
		Users:        userRepo,
		Services:     serviceRepo,
		Dispatcher:   dispatcher,
		Location:     bookingLocation,
	}

	loyaltyService := &loyalty.DefaultLoyaltyService{Repo: loyaltyRepo}

	notificationService, err := notification.NewFCMNotificationService(userRepo, utils.FCMClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	// Background worker for queued side effects.
	cron.InitSideEffectWorker(notificationService, loyaltyService)

	// Periodic dependency health snapshots for /health.
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,
		Reservations: &handlers.ReservationHandler{
			Scheduling: schedulingService,
		},
		BlockedSlots: &handlers.BlockedSlotHandler{
			Scheduling: schedulingService,
			Cache:      utils.GetCacheClient(),
		},
		Loyalty: &handlers.LoyaltyHandler{
			Loyalty: loyaltyService,
		},
	}

	routes.RegisterRoutes(router, handlerBundle)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
