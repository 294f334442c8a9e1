package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/movements"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockLedger   *inventory.StockLedgerUseCase
	ListMovements *movements.ListMovementsUseCase
	StatisticsUC  *usecase.StatisticsUseCase
	JWTSecret     string
	JWTIssuer     string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	products := api.Group("/products")
	ledgerHandler := NewLedgerHandler(deps.StockLedger)
	products.Patch("/:id/decrease-stock", ledgerHandler.DecreaseStock)

	movementHandler := NewMovementHandler(deps.ListMovements)
	api.Get("/movements", movementHandler.List)

	statisticsHandler := NewStatisticsHandler(deps.StatisticsUC)
	api.Get("/statistics", statisticsHandler.Get)
}
