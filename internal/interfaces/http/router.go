package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/application/report"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC   *usecase.ItemUseCase
	LedgerUC *ledger.LedgerUseCase
	ReportUC *report.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	itemHandler := NewItemHandler(deps.ItemUC)
	movementHandler := NewMovementHandler(deps.LedgerUC)
	reportHandler := NewReportHandler(deps.ReportUC, deps.LedgerUC)

	// Items
	items := api.Group("/items")
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Put("/:id/stock", itemHandler.ReconcileStock)

	// Libro de movimientos por item
	items.Get("/:id/movements", movementHandler.ListByItem)
	items.Post("/:id/movements", movementHandler.Append)
	items.Put("/:id/movements/:movementId", movementHandler.Correct)
	items.Delete("/:id/movements/:movementId", movementHandler.Reverse)

	// Consultas globales
	movements := api.Group("/movements")
	movements.Get("/", movementHandler.List)
	movements.Get("/all", movementHandler.ListWithItem)

	// Reportes
	reports := api.Group("/reports")
	reports.Get("/valuation", reportHandler.Valuation)
	reports.Get("/movements.xlsx", reportHandler.MovementsXLSX)
	reports.Get("/movements.pdf", reportHandler.MovementsPDF)

	api.Get("/audit/stock", reportHandler.AuditStock)
}
