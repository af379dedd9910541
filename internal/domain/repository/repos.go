package repository

// Repos agrupa los repositorios atados a una misma conexión o transacción.
type Repos struct {
	Categories CategoryRepository
	Units      UnitOfMeasurementRepository
	Products   ProductRepository
	StockIns   StockInRepository
	StockOuts  StockOutRepository
	Levels     StockLevelRepository
}
