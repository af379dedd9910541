package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger/internal/application/catalog"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// UnitUseCase casos de uso CRUD para unidades de medida.
type UnitUseCase struct {
	repo repository.UnitOfMeasurementRepository
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(repo repository.UnitOfMeasurementRepository) *UnitUseCase {
	return &UnitUseCase{repo: repo}
}

func (uc *UnitUseCase) Create(ctx context.Context, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	name, err := catalog.CleanName("name", in.Name, catalog.MaxUnitName)
	if err != nil {
		return nil, err
	}
	u := &entity.UnitOfMeasurement{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return toUnitResponse(u), nil
}

func (uc *UnitUseCase) GetByID(ctx context.Context, id string) (*dto.UnitResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("unit_of_measurement", id)
	}
	return toUnitResponse(u), nil
}

func (uc *UnitUseCase) List(ctx context.Context, search string, limit, offset int) (*dto.UnitListResponse, error) {
	list, err := uc.repo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUnitResponse(u))
	}
	return &dto.UnitListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina la unidad y en cascada los productos que la usan.
func (uc *UnitUseCase) Delete(ctx context.Context, id string) error {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NotFound("unit_of_measurement", id)
	}
	return uc.repo.Delete(ctx, id)
}

func toUnitResponse(u *entity.UnitOfMeasurement) *dto.UnitResponse {
	return &dto.UnitResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt}
}
