package entity

// StockLevel vista calculada de existencias de un producto: Available = TotalIn - TotalOut.
type StockLevel struct {
	ProductID   string
	ProductCode string
	ProductName string
	IsActive    bool
	TotalIn     int64
	TotalOut    int64
	Available   int64
}
