package entity

import "time"

// UnitOfMeasurement unidad en la que se cuenta un producto (kg, caja, unidad...).
type UnitOfMeasurement struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
