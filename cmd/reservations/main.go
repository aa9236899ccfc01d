package main

import (
	"woki/internal/reservations/events"
	"woki/internal/reservations/handler"
	"woki/internal/reservations/repository"
	"woki/internal/reservations/service"
	"woki/internal/reservations/validator"
	"woki/pkg/app"
	"woki/pkg/config"
	"woki/pkg/idempotency"
	"woki/pkg/keymutex"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting reservations service")

	serverApp := app.NewApplication(cfg)
	reservationService := initServices(cfg, serverApp)
	serverApp.SetApp(handler.NewReservationHandler(reservationService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config, serverApp *app.Application) service.ReservationService {
	var repo repository.Repository
	switch cfg.StorageDriver {
	case config.StorageMongo:
		cfg.SetMongo()
		serverApp.OnShutdown(cfg.GracefulShutdown)
		repo = repository.NewMongoRepository(cfg)
	default:
		memRepo := repository.NewMemoryRepository()
		memRepo.Seed(repository.DefaultSeed())
		repo = memRepo
	}

	idemStore := idempotency.NewInMemoryStore(cfg.IdempotencyTTL)
	serverApp.OnShutdown(idemStore.Stop)

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.Log)
		serverApp.OnShutdown(func() {
			if err := kafkaPublisher.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka publisher", "error", err)
			}
		})
		publisher = kafkaPublisher
	}

	reservationService := service.NewReservationService(
		repo,
		keymutex.New(),
		idemStore,
		validator.NewReservationValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Reservation service initialized", "storage", cfg.StorageDriver)
	return reservationService
}
