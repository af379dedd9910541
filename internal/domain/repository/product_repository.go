package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ProductFilter filtros del listado de productos (búsqueda por nombre o código).
type ProductFilter struct {
	Search     string
	CategoryID string
	IsActive   *bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Create y Update devuelven domain.ErrDuplicate si el código ya existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetByName busca por nombre exacto; el nombre no es único, devuelve el más antiguo.
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
}
