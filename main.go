package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cabanero/config"
	"cabanero/database"
	cabinRepo "cabanero/database/repository/cabin"
	reservationRepo "cabanero/database/repository/reservation"
	"cabanero/handlers"
	"cabanero/middleware"
	"cabanero/routes"
	"cabanero/services/reservation"
	"cabanero/services/tasks"
	"cabanero/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	stripe "github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	// Load configuration and logging first; everything else depends on them.
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// External connections.
	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	stripe.Key = config.AppConfig.StripeKey

	// Repositories.
	cabins := cabinRepo.NewMongoCabinRepo()
	reservations := reservationRepo.NewMongoReservationRepo()

	// Task queue client for delayed reservation expiry.
	redisOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}
	taskClient := asynq.NewClient(redisOpt)
	defer taskClient.Close()

	// Core service.
	svc := &reservation.DefaultReservationService{
		CabinRepo:  cabins,
		Repo:       reservations,
		Gateway:    reservation.NewStripeGateway(config.AppConfig.Currency),
		Scheduler:  tasks.NewAsynqScheduler(taskClient),
		PendingTTL: time.Duration(config.AppConfig.ReservationTTLHours) * time.Hour,
	}

	// HTTP layer.
	bundle := handlers.NewHandlerBundle(
		handlers.NewReservationHandler(svc, logger),
		handlers.NewCabinHandler(cabins, logger),
		handlers.NewStripeWebhookHandler(svc, config.AppConfig.StripeEndpointSecret, logger),
		utils.GetAuthCacheClient(),
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.RegisterRoutes(router, bundle)

	taskRedis := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})
	utils.StartHealthMonitor(utils.HealthBackends{
		Mongo:    database.MongoClient,
		Cache:    utils.GetCacheClient(),
		Sessions: utils.GetAuthCacheClient(),
		Tasks:    taskRedis,
	})

	// Background worker reclaiming reservations whose payment window lapsed.
	worker := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 5})
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReservationExpire, tasks.NewExpiryHandler(svc))
	go func() {
		if err := worker.Run(mux); err != nil {
			logger.Fatal("asynq worker failed", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited cleanly")
}
