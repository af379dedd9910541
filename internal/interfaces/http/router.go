package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/importer"
	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/application/report"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	UnitUC     *usecase.UnitUseCase
	ProductUC  *usecase.ProductUseCase
	Ledger     *ledger.UseCase
	Importer   *importer.Importer
	Report     *report.StockReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Delete("/:id", categoryHandler.Delete)

	units := protected.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Post("/", unitHandler.Create)
	units.Get("/", unitHandler.List)
	units.Get("/:id", unitHandler.GetByID)
	units.Delete("/:id", unitHandler.Delete)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Ledger)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Get("/:id/available-quantity", productHandler.AvailableQuantity)

	// Libro de existencias
	stockHandler := NewStockHandler(deps.Ledger, deps.Report)
	stockIns := protected.Group("/stock-ins")
	stockIns.Post("/", stockHandler.CreateStockIn)
	stockIns.Get("/", stockHandler.ListStockIns)
	stockOuts := protected.Group("/stock-outs")
	stockOuts.Post("/", stockHandler.CreateStockOut)
	stockOuts.Get("/", stockHandler.ListStockOuts)
	stockGroup := protected.Group("/stock")
	stockGroup.Get("/levels", stockHandler.Levels)
	stockGroup.Get("/report.pdf", stockHandler.ReportPDF)

	// Carga masiva (multipart, campo "file")
	imports := protected.Group("/imports")
	importHandler := NewImportHandler(deps.Importer)
	imports.Post("/products", importHandler.Products)
	imports.Post("/stock-ins", importHandler.StockIns)
}
