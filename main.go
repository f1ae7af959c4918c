package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voltport/config"
	"voltport/cron"
	"voltport/database"
	bookingRepoPkg "voltport/database/repository/booking"
	favoriteRepoPkg "voltport/database/repository/favorite"
	portRepoPkg "voltport/database/repository/port"
	subscriptionRepoPkg "voltport/database/repository/subscription"
	userRepoPkg "voltport/database/repository/user"
	"voltport/handlers"
	"voltport/middleware"
	"voltport/routes"
	"voltport/services/admin"
	"voltport/services/booking"
	"voltport/services/favorite"
	"voltport/services/port"
	"voltport/services/subscription"
	"voltport/services/tasks"
	"voltport/services/user"
	"voltport/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	portRepo := portRepoPkg.NewMongoPortRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	subscriptionRepo := subscriptionRepoPkg.NewMongoSubscriptionRepo()
	favoriteRepo := favoriteRepoPkg.NewMongoFavoriteRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:             userRepo,
		BookingRepo:      bookingRepo,
		FavoriteRepo:     favoriteRepo,
		SubscriptionRepo: subscriptionRepo,
	}
	portService := &port.DefaultPortService{
		Repo: portRepo,
	}
	reminderScheduler := tasks.NewAsynqScheduler()
	bookingService := &booking.DefaultBookingService{
		Repo:             bookingRepo,
		PortRepo:         portRepo,
		SubscriptionRepo: subscriptionRepo,
		Locker:           booking.RedisLocker{},
		Payments:         booking.NewPaymentProcessor(),
		Reminders:        reminderScheduler,
	}
	subscriptionService := &subscription.DefaultSubscriptionService{
		Repo:        subscriptionRepo,
		BookingRepo: bookingRepo,
	}
	favoriteService := &favorite.DefaultFavoriteService{
		Repo:     favoriteRepo,
		PortRepo: portRepo,
	}
	adminService := &admin.DefaultAdminService{
		UserRepo:         userRepo,
		PortRepo:         portRepo,
		BookingRepo:      bookingRepo,
		SubscriptionRepo: subscriptionRepo,
	}

	// handlers.
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	portHandler := handlers.NewPortHandler(portService, bookingService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	adminHandler := handlers.NewAdminHandler(userService, adminService)
	storageHandler := handlers.NewStorageHandler(cloudinaryStorageService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// Auth endpoints.
		SignupHandler:     authHandler.SignupHandler,
		LoginHandler:      authHandler.LoginHandler,
		AdminLoginHandler: authHandler.AdminLoginHandler,
		LogoutHandler:     authHandler.LogoutHandler,

		// Profile endpoints.
		GetProfileHandler:    userHandler.GetProfileHandler,
		UpdateProfileHandler: userHandler.UpdateProfileHandler,
		DeleteAccountHandler: userHandler.DeleteAccountHandler,

		// Port endpoints.
		ListPortsHandler:    portHandler.ListPortsHandler,
		GetPortHandler:      portHandler.GetPortHandler,
		GetPortSlotsHandler: portHandler.GetPortSlotsHandler,
		CreatePortHandler:   portHandler.CreatePortHandler,
		UpdatePortHandler:   portHandler.UpdatePortHandler,
		DeletePortHandler:   portHandler.DeletePortHandler,

		// Booking endpoints.
		CreateBookingHandler:  bookingHandler.CreateBookingHandler,
		ListMyBookingsHandler: bookingHandler.ListMyBookingsHandler,
		PayBookingHandler:     bookingHandler.PayBookingHandler,
		CancelBookingHandler:  bookingHandler.CancelBookingHandler,

		// Favorite endpoints.
		AddFavoriteHandler:    favoriteHandler.AddFavoriteHandler,
		RemoveFavoriteHandler: favoriteHandler.RemoveFavoriteHandler,
		ListFavoritesHandler:  favoriteHandler.ListFavoritesHandler,
		CheckFavoriteHandler:  favoriteHandler.CheckFavoriteHandler,

		// Subscription endpoints.
		ListPlansHandler:           subscriptionHandler.ListPlansHandler,
		SubscribeHandler:           subscriptionHandler.SubscribeHandler,
		ListMySubscriptionsHandler: subscriptionHandler.ListMySubscriptionsHandler,
		CheckLimitHandler:          subscriptionHandler.CheckLimitHandler,

		// Admin endpoints.
		CreatePlanHandler:          subscriptionHandler.CreatePlanHandler,
		AdminGetAllUsersHandler:    adminHandler.GetAllUsersHandler,
		AdminUpdateUserHandler:     adminHandler.UpdateUserHandler,
		AdminGetAllBookingsHandler: adminHandler.GetAllBookingsHandler,
		AdminGetStatsHandler:       adminHandler.GetStatsHandler,

		// Storage endpoints.
		UploadFileHandler:     storageHandler.UploadFileHandler,
		GetDownloadURLHandler: storageHandler.GetDownloadURLHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the reminder worker.
	cron.InitReminderWorker()

	// Start the HTTP server.
	appPort := config.AppConfig.AppPort
	if appPort == "" {
		appPort = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + appPort,
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

	if err := reminderScheduler.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close reminder scheduler: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
