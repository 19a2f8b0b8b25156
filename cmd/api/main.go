package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/parcel-delivery-service/internal/api/http"
	"github.com/spec-kit/parcel-delivery-service/internal/api/http/handlers"
	"github.com/spec-kit/parcel-delivery-service/internal/cache"
	"github.com/spec-kit/parcel-delivery-service/internal/config"
	"github.com/spec-kit/parcel-delivery-service/internal/events"
	"github.com/spec-kit/parcel-delivery-service/internal/observability"
	"github.com/spec-kit/parcel-delivery-service/internal/persistence"
	"github.com/spec-kit/parcel-delivery-service/internal/repository"
	"github.com/spec-kit/parcel-delivery-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher(logger)
	events.RegisterAuditLog(dispatcher, logger)

	trackCache := cache.NewTrackCache(redis, cfg.Cache.TTL(), logger)
	trackCache.RegisterInvalidation(dispatcher)

	pool := pg.PoolHandle()
	parcelRepo := repository.NewParcelRepository(pool)
	courierRepo := repository.NewCourierRepository(pool)
	txRunner := repository.NewTxRunner(pg)

	parcelService := service.NewParcelService(service.ParcelDependencies{
		ParcelRepo: parcelRepo,
		TxRunner:   txRunner,
		Cache:      trackCache,
		Dispatcher: dispatcher,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		TxRunner:   txRunner,
		Dispatcher: dispatcher,
	})
	courierService := service.NewCourierService(courierRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	parcelsHandler := handlers.NewParcelsHandler(parcelService, assignmentService)
	couriersHandler := handlers.NewCouriersHandler(courierService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   healthHandler,
		Parcels:  parcelsHandler,
		Couriers: couriersHandler,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
