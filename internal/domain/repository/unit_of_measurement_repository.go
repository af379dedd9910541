package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// UnitOfMeasurementRepository define el puerto de persistencia para UnitOfMeasurement.
type UnitOfMeasurementRepository interface {
	Create(ctx context.Context, unit *entity.UnitOfMeasurement) error
	GetByID(ctx context.Context, id string) (*entity.UnitOfMeasurement, error)
	GetByName(ctx context.Context, name string) (*entity.UnitOfMeasurement, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.UnitOfMeasurement, error)
	Delete(ctx context.Context, id string) error
}
