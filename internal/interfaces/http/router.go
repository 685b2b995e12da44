package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fumigacion-api/internal/application/auth"
	"github.com/jhoicas/fumigacion-api/internal/application/operation"
	"github.com/jhoicas/fumigacion-api/internal/application/stock"
	"github.com/jhoicas/fumigacion-api/internal/application/usecase"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OperationUC *operation.UseCase
	StockUC     *stock.UseCase
	WarehouseUC *usecase.WarehouseUseCase
	CatalogUC   *usecase.CatalogUseCase
	AuthUC      *auth.UseCase
	PDFGen      operation.CertificatePDFGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Operaciones de fumigación (protegido)
	ops := protected.Group("/operations")
	operationHandler := NewOperationHandler(deps.OperationUC, deps.PDFGen)
	ops.Post("/", operationHandler.Begin)
	ops.Get("/", operationHandler.List)
	ops.Get("/:rootId", operationHandler.FetchChain)
	ops.Post("/:rootId/records", operationHandler.Append)
	ops.Post("/:rootId/finalize", operationHandler.Finalize)
	ops.Get("/:rootId/aggregates", operationHandler.Aggregates)
	ops.Get("/:rootId/certificate", operationHandler.Certificate)

	// Aprobaciones (solo supervisor/admin)
	records := protected.Group("/records", RequireRole(entity.RoleSupervisor, entity.RoleAdmin))
	approvalHandler := NewApprovalHandler(deps.OperationUC)
	records.Post("/:recordId/approve", approvalHandler.Approve)
	records.Post("/:recordId/reject", approvalHandler.Reject)

	// Stock (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Get("/balances", stockHandler.Balances)
	stockGroup.Get("/balances/:warehouseId", stockHandler.Balance)
	stockGroup.Get("/movements", stockHandler.Movements)
	stockGroup.Post("/adjust", stockHandler.Adjust)
	stockGroup.Put("/movements/:movementId", stockHandler.EditMovement)
	stockGroup.Delete("/movements/:movementId", stockHandler.DeleteMovement)

	// Catálogo (protegido)
	catalogHandler := NewCatalogHandler(deps.WarehouseUC, deps.CatalogUC)
	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", catalogHandler.CreateWarehouse)
	warehouses.Get("/", catalogHandler.ListWarehouses)
	warehouses.Get("/:id", catalogHandler.GetWarehouse)
	warehouses.Post("/:id/cleanings", catalogHandler.RegisterCleaning)
	warehouses.Get("/:id/cleanings", catalogHandler.ListCleanings)

	clients := protected.Group("/clients")
	clients.Post("/", catalogHandler.CreateClient)
	clients.Get("/", catalogHandler.ListClients)

	merchandise := protected.Group("/merchandise")
	merchandise.Post("/", catalogHandler.CreateMerchandise)
	merchandise.Get("/", catalogHandler.ListMerchandise)
}
