package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/domain/stock"
)

// UseCase libro de existencias: registra entradas (lotes) y salidas, y calcula lo disponible.
// Las escrituras corren en una transacción con la fila del producto bloqueada (SELECT FOR UPDATE).
type UseCase struct {
	txRunner  TxRunner
	repos     repository.Repos
	allocator *stock.BatchIDAllocator
	log       zerolog.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. repos se usa para lecturas fuera de transacción.
func NewUseCase(txRunner TxRunner, repos repository.Repos, allocator *stock.BatchIDAllocator, log zerolog.Logger) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		repos:     repos,
		allocator: allocator,
		log:       log,
		now:       time.Now,
	}
}

// StockInInput datos de una entrada. BatchID vacío = se genera; si ya existe se reemplaza.
type StockInInput struct {
	ProductID      string
	Rate           decimal.Decimal
	Quantity       int64
	DateOfPurchase time.Time // cero = ahora
	BatchID        string
}

// StockOutInput datos de una salida.
type StockOutInput struct {
	ProductID          string
	Quantity           int64
	DateOfDisbursement time.Time // cero = ahora
}

// StockOutView salida con la cantidad disponible actual de su producto (campo derivado de listados).
type StockOutView struct {
	entity.StockOut
	AvailableQuantity int64
}

// AvailableQuantity total recibido menos total despachado del producto, recalculado desde el historial.
func (uc *UseCase) AvailableQuantity(ctx context.Context, productID string) (int64, error) {
	product, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.NotFound("product", productID)
	}
	return availableQuantity(ctx, uc.repos, productID)
}

func availableQuantity(ctx context.Context, repos repository.Repos, productID string) (int64, error) {
	totalIn, err := repos.StockIns.SumQuantityByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	totalOut, err := repos.StockOuts.SumQuantityByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	return stock.Available(totalIn, totalOut), nil
}

// RecordStockIn registra una entrada en su propia transacción.
func (uc *UseCase) RecordStockIn(ctx context.Context, in StockInInput) (*entity.StockIn, error) {
	var created *entity.StockIn
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		created, err = uc.RecordStockInTx(ctx, repos, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RecordStockInTx registra una entrada usando los repositorios del caller (misma transacción).
// No valida niveles de stock: las entradas aceptan cualquier cantidad.
// Una violación de unicidad del batch_id al insertar se devuelve como ConflictError.
func (uc *UseCase) RecordStockInTx(ctx context.Context, repos repository.Repos, in StockInInput) (*entity.StockIn, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.NewValidationError("product", "product is required")
	}
	if err := stock.ValidateBatchID(in.BatchID); err != nil {
		return nil, err
	}

	// Bloquea la fila del producto para serializar con salidas concurrentes
	product, err := repos.Products.GetByIDForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product", in.ProductID)
	}

	batchID, err := uc.allocator.Resolve(ctx, repos.StockIns, in.BatchID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	date := in.DateOfPurchase
	if date.IsZero() {
		date = now
	}
	si := &entity.StockIn{
		ID:             uuid.New().String(),
		ProductID:      product.ID,
		Rate:           in.Rate.Round(stock.RateScale),
		DateOfPurchase: date,
		Quantity:       in.Quantity,
		BatchID:        batchID,
		CreatedAt:      now,
	}
	if err := repos.StockIns.Create(ctx, si); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, &domain.ConflictError{Resource: "stock_in", Field: "batch_id", Value: batchID}
		}
		return nil, fmt.Errorf("registrar entrada: %w", err)
	}

	uc.log.Debug().
		Str("product_id", si.ProductID).
		Str("batch_id", si.BatchID).
		Int64("quantity", si.Quantity).
		Str("rate", si.Rate.StringFixed(stock.RateScale)).
		Msg("entrada registrada")
	return si, nil
}

// RecordStockOut valida y registra una salida. Reglas, en orden:
// cantidad distinta de cero, producto informado, producto con al menos una entrada,
// cantidad no mayor a lo disponible. El chequeo y la escritura ocurren con la fila del
// producto bloqueada, así dos salidas concurrentes no pueden dejar el disponible en negativo.
func (uc *UseCase) RecordStockOut(ctx context.Context, in StockOutInput) (*entity.StockOut, error) {
	if err := stock.ValidateStockOutRequest(strings.TrimSpace(in.ProductID), in.Quantity); err != nil {
		return nil, err
	}

	var created *entity.StockOut
	var available int64
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		product, err := repos.Products.GetByIDForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("product", in.ProductID)
		}

		receipts, err := repos.StockIns.CountByProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		available, err = availableQuantity(ctx, repos, product.ID)
		if err != nil {
			return err
		}
		if err := stock.CheckAvailability(in.Quantity, receipts, available); err != nil {
			return err
		}

		now := uc.now()
		date := in.DateOfDisbursement
		if date.IsZero() {
			date = now
		}
		created = &entity.StockOut{
			ID:                 uuid.New().String(),
			ProductID:          product.ID,
			DateOfDisbursement: date,
			Quantity:           in.Quantity,
			CreatedAt:          now,
		}
		if err := repos.StockOuts.Create(ctx, created); err != nil {
			return fmt.Errorf("registrar salida: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug().
		Str("product_id", created.ProductID).
		Int64("quantity", created.Quantity).
		Int64("available_after", available-created.Quantity).
		Msg("salida registrada")
	return created, nil
}

// ListStockIns lista entradas con filtros y paginación.
func (uc *UseCase) ListStockIns(ctx context.Context, f repository.StockFilter, limit, offset int) ([]*entity.StockIn, error) {
	return uc.repos.StockIns.List(ctx, f, limit, offset)
}

// ListStockOuts lista salidas junto con la cantidad disponible actual de cada producto.
func (uc *UseCase) ListStockOuts(ctx context.Context, f repository.StockFilter, limit, offset int) ([]StockOutView, error) {
	list, err := uc.repos.StockOuts.List(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	cache := make(map[string]int64)
	views := make([]StockOutView, 0, len(list))
	for _, so := range list {
		available, ok := cache[so.ProductID]
		if !ok {
			available, err = availableQuantity(ctx, uc.repos, so.ProductID)
			if err != nil {
				return nil, err
			}
			cache[so.ProductID] = available
		}
		views = append(views, StockOutView{StockOut: *so, AvailableQuantity: available})
	}
	return views, nil
}

// StockLevels existencias agregadas por producto.
func (uc *UseCase) StockLevels(ctx context.Context, f repository.ProductFilter) ([]*entity.StockLevel, error) {
	return uc.repos.Levels.ListLevels(ctx, f)
}
