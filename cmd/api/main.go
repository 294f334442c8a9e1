package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/stock-ledger-api/docs"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/movements"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	infrakafka "github.com/jhoicas/stock-ledger-api/internal/infrastructure/kafka"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/metrics"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	collector := metrics.Collector{}
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Registro post-venta: el movimiento se escribe en su propia transacción, después del commit del stock.
	saleRecorder := movements.NewSaleRecorder(
		movements.NewRecordMovementUseCase(movementRepo),
		log.Component("movement-recorder"),
		movements.SaleRecorderConfig{Async: cfg.Ledger.RecordAsync, Timeout: cfg.Ledger.RecordTimeout},
	).WithMetrics(collector)

	var publisher *infrakafka.MovementPublisher
	if cfg.Kafka.Enabled() {
		publisher = infrakafka.NewMovementPublisher(cfg.Kafka.Brokers, cfg.Kafka.MovementsTopic)
		saleRecorder.WithPublisher(publisher)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.MovementsTopic).Msg("publicación de movimientos habilitada")
	}

	stockLedgerUC := inventory.NewStockLedgerUseCase(txRunner, saleRecorder).WithMetrics(collector)
	listMovementsUC := movements.NewListMovementsUseCase(movementRepo)
	statisticsUC := usecase.NewStatisticsUseCase(movementRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockLedger:   stockLedgerUC,
		ListMovements: listMovementsUC,
		StatisticsUC:  statisticsUC,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Registros de movimientos en vuelo antes de cerrar el pool.
	saleRecorder.Wait()
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("cierre del productor Kafka")
		}
	}

	log.Info().Msg("aplicación detenida")
}
