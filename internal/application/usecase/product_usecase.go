package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger/internal/application/catalog"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Las existencias se manejan vía el ledger.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	units      repository.UnitOfMeasurementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	units repository.UnitOfMeasurementRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, units: units}
}

// Create crea un nuevo producto. Un código repetido devuelve ConflictError.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name, err := catalog.CleanName("name", in.Name, catalog.MaxProductName)
	if err != nil {
		return nil, err
	}
	code, err := catalog.CleanName("code", in.Code, catalog.MaxProductCode)
	if err != nil {
		return nil, err
	}
	if err := uc.checkRefs(ctx, in.CategoryID, in.UnitOfMeasurementID); err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	product := &entity.Product{
		ID:                  uuid.New().String(),
		Name:                name,
		Code:                code,
		CategoryID:          in.CategoryID,
		UnitOfMeasurementID: in.UnitOfMeasurementID,
		IsActive:            active,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, duplicateCode(err, code)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product", id)
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos informados. Desactivar (is_active=false) reemplaza al borrado.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product", id)
	}
	if in.Name != nil {
		if product.Name, err = catalog.CleanName("name", *in.Name, catalog.MaxProductName); err != nil {
			return nil, err
		}
	}
	if in.Code != nil {
		if product.Code, err = catalog.CleanName("code", *in.Code, catalog.MaxProductCode); err != nil {
			return nil, err
		}
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.UnitOfMeasurementID != nil {
		product.UnitOfMeasurementID = *in.UnitOfMeasurementID
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if err := uc.checkRefs(ctx, product.CategoryID, product.UnitOfMeasurementID); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, duplicateCode(err, product.Code)
	}
	return toProductResponse(product), nil
}

// List lista productos con búsqueda (nombre o código), filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, f repository.ProductFilter, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// checkRefs verifica que categoría y unidad existan.
func (uc *ProductUseCase) checkRefs(ctx context.Context, categoryID, unitID string) error {
	c, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NewValidationError("category_id", "category not found")
	}
	u, err := uc.units.GetByID(ctx, unitID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NewValidationError("unit_of_measurement_id", "unit of measurement not found")
	}
	return nil
}

func duplicateCode(err error, code string) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return &domain.ConflictError{Resource: "product", Field: "code", Value: code}
	}
	return err
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Code:                p.Code,
		CategoryID:          p.CategoryID,
		UnitOfMeasurementID: p.UnitOfMeasurementID,
		IsActive:            p.IsActive,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
