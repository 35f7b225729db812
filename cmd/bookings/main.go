package main

import (
	"context"
	"time"

	authhandler "bookly/internal/auth/handler"
	"bookly/internal/bookings/events"
	"bookly/internal/bookings/handler"
	"bookly/internal/bookings/repository"
	"bookly/internal/bookings/service"
	"bookly/internal/bookings/validator"
	"bookly/pkg/app"
	"bookly/pkg/config"
	"bookly/pkg/contracts"
	"bookly/pkg/kafka"
	kafka_config "bookly/pkg/kafka/config"
	kafka_middleware "bookly/pkg/kafka/middleware"
	"bookly/pkg/middleware"
	"bookly/pkg/token"

	"github.com/julienschmidt/httprouter"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()

	cfg.Log.Info("Starting Bookings service")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	bookingService, lockRepo := initServices(cfg, publisher)
	ensureIndexes(cfg, lockRepo)

	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL, ServiceName)
	requireAuth := middleware.RequireAuth(tokens, cfg.Log)

	bookingHandler := handler.NewBookingHandler(bookingService, cfg.Log)
	authHandler := authhandler.NewAuthHandler(tokens, cfg.Log)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		contracts.HandlerFunc(func(router *httprouter.Router) {
			bookingHandler.RegisterRoutes(router, requireAuth)
		}),
		authHandler,
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) (service.BookingService, repository.SlotLockRepository) {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewMongoSlotLockRepository(cfg)
	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService, lockRepo
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.BookingEventsEnabled {
		cfg.Log.Info("Booking events disabled")
		return events.NopPublisher{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	cfg.Log.Info("Booking events enabled", "topic", cfg.BookingEventsTopic)
	return events.NewKafkaPublisher(producer, cfg.Log)
}

func ensureIndexes(cfg *config.Config, lockRepo repository.SlotLockRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := lockRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to create slot lock indexes", "error", err)
	}
}
