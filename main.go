package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourbook/config"
	"tourbook/cron"
	"tourbook/database"
	bookingRepo "tourbook/database/repository/booking"
	catalogRepo "tourbook/database/repository/catalog"
	providerRepo "tourbook/database/repository/provider"
	reviewRepo "tourbook/database/repository/review"
	settingsRepo "tourbook/database/repository/settings"
	userRepo "tourbook/database/repository/user"
	"tourbook/handlers"
	"tourbook/middleware"
	"tourbook/routes"
	"tourbook/services/availability"
	"tourbook/services/booking"
	"tourbook/services/identity"
	"tourbook/services/notification"
	"tourbook/services/provider"
	"tourbook/services/tasks"
	"tourbook/services/user"
	"tourbook/utils"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// stores bundles the repositories of the selected backend.
type stores struct {
	users     userRepo.UserRepository
	providers providerRepo.ProviderRepository
	catalog   catalogRepo.CatalogRepository
	settings  settingsRepo.SettingsRepository
	reviews   reviewRepo.ReviewRepository
	bookings  bookingRepo.BookingRepository
	health    utils.HealthCheck
}

func newStores(app *firebase.App) stores {
	switch config.AppConfig.StoreBackend {
	case "mongo":
		database.InitDB()
		return stores{
			users:     userRepo.NewMongoUserRepo(),
			providers: providerRepo.NewMongoProviderRepo(),
			catalog:   catalogRepo.NewMongoCatalogRepo(),
			settings:  settingsRepo.NewMongoSettingsRepo(),
			reviews:   reviewRepo.NewMongoReviewRepo(),
			bookings:  bookingRepo.NewMongoBookingRepo(),
			health: utils.HealthCheck{Name: "mongo", Ping: func(ctx context.Context) error {
				return database.MongoClient.Ping(ctx, nil)
			}},
		}
	default:
		database.InitFirestore(app)
		client := database.FirestoreClient
		return stores{
			users:     userRepo.NewFirestoreUserRepo(client),
			providers: providerRepo.NewFirestoreProviderRepo(client),
			catalog:   catalogRepo.NewFirestoreCatalogRepo(client),
			settings:  settingsRepo.NewFirestoreSettingsRepo(client),
			reviews:   reviewRepo.NewFirestoreReviewRepo(client),
			bookings:  bookingRepo.NewFirestoreBookingRepo(client),
			health:    utils.HealthCheck{Name: "firestore", Ping: database.PingFirestore},
		}
	}
}

func needsFirebase() bool {
	cfg := config.AppConfig
	return cfg.StoreBackend != "mongo" || cfg.AuthBackend != "local" || cfg.NotificationsEnabled
}

func newIdentityProvider(users userRepo.UserRepository) identity.Provider {
	if config.AppConfig.AuthBackend == "local" {
		return &identity.LocalProvider{
			Users:   users,
			Revoked: &identity.RedisRevocationStore{Client: utils.GetAuthCacheClient()},
			TTL:     config.TokenTTL(),
		}
	}
	return identity.NewFirebaseProvider(utils.AuthClient, config.AppConfig.FirebaseWebAPIKey)
}

func newCalendarCache(logger *zap.Logger) availability.CalendarCache {
	if config.AppConfig.CacheBackend == "memory" {
		cache, err := availability.NewLRUCalendarCache(config.AppConfig.CacheSize)
		if err != nil {
			logger.Fatal("main: failed to create calendar cache", zap.Error(err))
		}
		return cache
	}
	return availability.NewRedisCalendarCache(utils.GetCacheClient(), logger)
}

func redisHealthCheck() utils.HealthCheck {
	return utils.HealthCheck{Name: "redis", Ping: func(ctx context.Context) error {
		return utils.GetCacheClient().Ping(ctx).Err()
	}}
}

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var app *firebase.App
	if needsFirebase() {
		app = utils.FirebaseInit()
	}

	// repositories.
	st := newStores(app)
	loc := config.Location()

	policy, err := booking.ParsePolicy(config.AppConfig.ConflictPolicy)
	if err != nil {
		logger.Fatal("main: invalid conflict policy", zap.Error(err))
	}
	conflicts := booking.NewConflictChecker(st.bookings, policy)

	// notifications.
	var (
		notifier booking.Notifier
		worker   *cron.Worker
		queue    *asynq.Client
	)
	checks := []utils.HealthCheck{st.health}
	if config.AppConfig.CacheBackend != "memory" || config.AppConfig.AuthBackend == "local" {
		checks = append(checks, redisHealthCheck())
	}

	// services.
	userService := user.NewDefaultUserService(st.users)
	idp := newIdentityProvider(st.users)

	bookingService := &booking.DefaultBookingService{
		Repo:      st.bookings,
		Settings:  st.settings,
		Catalog:   st.catalog,
		Providers: st.providers,
		Conflicts: conflicts,
		Location:  loc,
		Logger:    logger.Named("booking"),
	}

	if config.AppConfig.NotificationsEnabled {
		queue = asynq.NewClient(utils.QueueRedisOpt())
		notifier = tasks.NewEnqueuer(queue, loc)
		bookingService.Notifier = notifier

		notificationService := notification.NewDefaultNotificationService(
			st.users, st.providers, st.settings, utils.FCMClient, loc)
		worker = cron.NewWorker(&tasks.Handlers{
			Notifications: notificationService,
			Bookings:      bookingService,
		})
		worker.Start()
		checks = append(checks, cron.QueueHealthCheck())
	}

	providerService := &provider.DefaultProviderService{
		Repo:     st.providers,
		Settings: st.settings,
		Catalog:  st.catalog,
		Reviews:  st.reviews,
		Bookings: bookingService,
		Location: loc,
	}

	availabilityService := &availability.Service{
		Providers:      st.providers,
		Settings:       st.settings,
		Catalog:        st.catalog,
		Bookings:       st.bookings,
		Conflicts:      conflicts,
		Cache:          newCalendarCache(logger),
		DefaultHorizon: config.AppConfig.AvailabilityHorizonDays,
		Location:       loc,
		Logger:         logger.Named("availability"),
	}

	handlerBundle := handlers.NewHandlerBundle(idp, userService, providerService, bookingService, availabilityService)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, 30*time.Second, checks)

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
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

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("store", config.AppConfig.StoreBackend),
		zap.String("auth", config.AppConfig.AuthBackend),
		zap.String("conflictPolicy", string(policy)))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queue != nil {
		_ = queue.Close()
	}
	if database.FirestoreClient != nil {
		_ = database.FirestoreClient.Close()
	}
	if database.MongoClient != nil {
		_ = database.MongoClient.Disconnect(ctx)
	}

	logger.Info("main: server stopped gracefully")
}
