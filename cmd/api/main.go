package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/fumigacion-api/internal/application/auth"
	"github.com/jhoicas/fumigacion-api/internal/application/operation"
	"github.com/jhoicas/fumigacion-api/internal/application/stock"
	"github.com/jhoicas/fumigacion-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/fumigacion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/fumigacion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/fumigacion-api/internal/interfaces/http"
	"github.com/jhoicas/fumigacion-api/pkg/config"
	"github.com/jhoicas/fumigacion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	merchandiseRepo := postgres.NewMerchandiseRepository(pool)
	cleaningRepo := postgres.NewCleaningRecordRepository(pool)
	recordRepo := postgres.NewOperationRecordRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	operationUC := operation.NewUseCase(
		txRunner, recordRepo,
		warehouseRepo, clientRepo, merchandiseRepo, cleaningRepo,
	)
	stockUC := stock.NewUseCase(txRunner, balanceRepo, movementRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, cleaningRepo)
	catalogUC := usecase.NewCatalogUseCase(clientRepo, merchandiseRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: constancia de fumigación para el cliente
	pdfGenerator := infrapdf.NewMarotoCertificateGenerator()

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
		Title:    "Fumigación API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OperationUC: operationUC,
		StockUC:     stockUC,
		WarehouseUC: warehouseUC,
		CatalogUC:   catalogUC,
		AuthUC:      authUC,
		PDFGen:      pdfGenerator,
		JWTSecret:   cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
