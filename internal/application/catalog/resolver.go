// Package catalog resuelve entidades de catálogo por nombre o código (get-or-create, upsert)
// sobre repositorios atados a una transacción. Lo usan la importación de planillas y los casos de uso CRUD.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// Defaults nombres de categoría y unidad para productos creados implícitamente.
type Defaults struct {
	Category string
	Unit     string
}

// ProductFields campos sobrescribibles de un producto en un upsert por código.
type ProductFields struct {
	Code     string
	Name     string
	Category string // nombre
	Unit     string // nombre
	IsActive bool
}

// Resolver get-or-create de categorías, unidades y productos.
type Resolver struct {
	defaults Defaults
	now      func() time.Time
}

// NewResolver construye el resolver con los nombres por defecto.
func NewResolver(defaults Defaults) *Resolver {
	return &Resolver{defaults: defaults, now: time.Now}
}

// GetOrCreateCategory busca la categoría por nombre exacto; si no existe la crea.
func (r *Resolver) GetOrCreateCategory(ctx context.Context, repos repository.Repos, name string) (*entity.Category, error) {
	name, err := CleanName("category", name, MaxCategoryName)
	if err != nil {
		return nil, err
	}
	existing, err := repos.Categories.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	c := &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: r.now()}
	if err := repos.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetOrCreateUnit busca la unidad por nombre exacto; si no existe la crea.
func (r *Resolver) GetOrCreateUnit(ctx context.Context, repos repository.Repos, name string) (*entity.UnitOfMeasurement, error) {
	name, err := CleanName("unit_of_measurement", name, MaxUnitName)
	if err != nil {
		return nil, err
	}
	existing, err := repos.Units.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	u := &entity.UnitOfMeasurement{ID: uuid.New().String(), Name: name, CreatedAt: r.now()}
	if err := repos.Units.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpsertProductByCode crea el producto o, si el código ya existe, sobrescribe nombre, categoría,
// unidad y estado. Categoría y unidad se resuelven por nombre (get-or-create).
func (r *Resolver) UpsertProductByCode(ctx context.Context, repos repository.Repos, f ProductFields) (*entity.Product, error) {
	code, err := CleanName("code", f.Code, MaxProductCode)
	if err != nil {
		return nil, err
	}
	name, err := CleanName("name", f.Name, MaxProductName)
	if err != nil {
		return nil, err
	}
	category, err := r.GetOrCreateCategory(ctx, repos, f.Category)
	if err != nil {
		return nil, err
	}
	unit, err := r.GetOrCreateUnit(ctx, repos, f.Unit)
	if err != nil {
		return nil, err
	}

	now := r.now()
	product, err := repos.Products.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		product = &entity.Product{
			ID:                  uuid.New().String(),
			Code:                code,
			Name:                name,
			CategoryID:          category.ID,
			UnitOfMeasurementID: unit.ID,
			IsActive:            f.IsActive,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := createProduct(ctx, repos, product); err != nil {
			return nil, err
		}
		return product, nil
	}

	product.Name = name
	product.CategoryID = category.ID
	product.UnitOfMeasurementID = unit.ID
	product.IsActive = f.IsActive
	product.UpdatedAt = now
	if err := repos.Products.Update(ctx, product); err != nil {
		return nil, conflictOnDuplicate(err, code)
	}
	return product, nil
}

// GetOrCreateProductByCode devuelve el producto con ese código o lo crea activo, con nombre name
// (o el código si name está vacío) y la categoría/unidad por defecto.
func (r *Resolver) GetOrCreateProductByCode(ctx context.Context, repos repository.Repos, code, name string) (*entity.Product, error) {
	code, err := CleanName("product_code", code, MaxProductCode)
	if err != nil {
		return nil, err
	}
	existing, err := repos.Products.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if name = strings.TrimSpace(name); name == "" {
		name = code
	}
	return r.createWithDefaults(ctx, repos, code, name)
}

// GetOrCreateProductByName devuelve el producto más antiguo con ese nombre o lo crea activo,
// usando el nombre como código y la categoría/unidad por defecto.
func (r *Resolver) GetOrCreateProductByName(ctx context.Context, repos repository.Repos, name string) (*entity.Product, error) {
	name, err := CleanName("product_name", name, MaxProductName)
	if err != nil {
		return nil, err
	}
	existing, err := repos.Products.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return r.createWithDefaults(ctx, repos, name, name)
}

func (r *Resolver) createWithDefaults(ctx context.Context, repos repository.Repos, code, name string) (*entity.Product, error) {
	name, err := CleanName("product_name", name, MaxProductName)
	if err != nil {
		return nil, err
	}
	category, err := r.GetOrCreateCategory(ctx, repos, r.defaults.Category)
	if err != nil {
		return nil, err
	}
	unit, err := r.GetOrCreateUnit(ctx, repos, r.defaults.Unit)
	if err != nil {
		return nil, err
	}
	now := r.now()
	product := &entity.Product{
		ID:                  uuid.New().String(),
		Code:                code,
		Name:                name,
		CategoryID:          category.ID,
		UnitOfMeasurementID: unit.ID,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := createProduct(ctx, repos, product); err != nil {
		return nil, err
	}
	return product, nil
}

func createProduct(ctx context.Context, repos repository.Repos, p *entity.Product) error {
	if err := repos.Products.Create(ctx, p); err != nil {
		return conflictOnDuplicate(err, p.Code)
	}
	return nil
}

func conflictOnDuplicate(err error, code string) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return &domain.ConflictError{Resource: "product", Field: "code", Value: code}
	}
	return err
}
