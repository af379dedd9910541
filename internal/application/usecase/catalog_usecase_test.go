package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

type catalogUCs struct {
	categories *usecase.CategoryUseCase
	units      *usecase.UnitUseCase
	products   *usecase.ProductUseCase
}

func newCatalog() catalogUCs {
	repos := memory.NewStore().Repos()
	return catalogUCs{
		categories: usecase.NewCategoryUseCase(repos.Categories),
		units:      usecase.NewUnitUseCase(repos.Units),
		products:   usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Units),
	}
}

func (c catalogUCs) refs(t *testing.T) (string, string) {
	t.Helper()
	ctx := context.Background()
	cat, err := c.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)
	unit, err := c.units.Create(ctx, dto.CreateUnitRequest{Name: "Botella"})
	require.NoError(t, err)
	return cat.ID, unit.ID
}

func TestProductUseCase_CodigoDuplicado(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	catID, unitID := c.refs(t)

	p, err := c.products.Create(ctx, dto.CreateProductRequest{Name: "Agua", Code: "A-1", CategoryID: catID, UnitOfMeasurementID: unitID})
	require.NoError(t, err)
	assert.True(t, p.IsActive, "activo por defecto")

	_, err = c.products.Create(ctx, dto.CreateProductRequest{Name: "Otra", Code: "A-1", CategoryID: catID, UnitOfMeasurementID: unitID})
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "code", conflict.Field)
	assert.Equal(t, "A-1", conflict.Value)

	other, err := c.products.Create(ctx, dto.CreateProductRequest{Name: "Jugo", Code: "J-1", CategoryID: catID, UnitOfMeasurementID: unitID})
	require.NoError(t, err)
	dup := "A-1"
	_, err = c.products.Update(ctx, other.ID, dto.UpdateProductRequest{Code: &dup})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProductUseCase_ReferenciasInexistentes(t *testing.T) {
	c := newCatalog()
	_, unitID := c.refs(t)

	_, err := c.products.Create(context.Background(), dto.CreateProductRequest{Name: "Agua", Code: "A-1", CategoryID: "nope", UnitOfMeasurementID: unitID})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category_id", vErr.Field)
}

func TestProductUseCase_UpdateYListado(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	catID, unitID := c.refs(t)

	p, err := c.products.Create(ctx, dto.CreateProductRequest{Name: "Agua", Code: "A-1", CategoryID: catID, UnitOfMeasurementID: unitID})
	require.NoError(t, err)
	_, err = c.products.Create(ctx, dto.CreateProductRequest{Name: "Jugo", Code: "J-1", CategoryID: catID, UnitOfMeasurementID: unitID})
	require.NoError(t, err)

	inactive := false
	updated, err := c.products.Update(ctx, p.ID, dto.UpdateProductRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	list, err := c.products.List(ctx, repository.ProductFilter{Search: "a-1"}, 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Agua", list.Items[0].Name)

	active := true
	list, err = c.products.List(ctx, repository.ProductFilter{IsActive: &active}, 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Jugo", list.Items[0].Name)

	_, err = c.products.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryUseCase_DeleteEnCascada(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	catID, unitID := c.refs(t)
	p, err := c.products.Create(ctx, dto.CreateProductRequest{Name: "Agua", Code: "A-1", CategoryID: catID, UnitOfMeasurementID: unitID})
	require.NoError(t, err)

	require.NoError(t, c.categories.Delete(ctx, catID))
	_, err = c.products.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "borrar la categoría arrastra sus productos")

	assert.ErrorIs(t, c.categories.Delete(ctx, catID), domain.ErrNotFound)
}

func TestCategoryUseCase_ValidaNombre(t *testing.T) {
	c := newCatalog()
	_, err := c.categories.Create(context.Background(), dto.CreateCategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := c.units.List(context.Background(), "", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
