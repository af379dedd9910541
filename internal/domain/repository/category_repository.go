package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Los Get* devuelven (nil, nil) cuando no existe el registro.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// GetByName busca por nombre exacto (sensible a mayúsculas); si hay varios devuelve el más antiguo.
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error)
	// Delete borra en cascada los productos que la referencian.
	Delete(ctx context.Context, id string) error
}
