package entity

import "time"

// Product representa un producto del catálogo. Code es único en todo el sistema.
// No se borra en el flujo normal: se desactiva con IsActive.
type Product struct {
	ID                  string
	Name                string
	CategoryID          string
	Code                string
	UnitOfMeasurementID string
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
