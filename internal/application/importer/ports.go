package importer

import (
	"context"
	"io"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// SheetReader lee la primera hoja de una planilla subida (.xlsx).
type SheetReader interface {
	ReadFirstSheet(ctx context.Context, r io.Reader) (*Sheet, error)
}

// StockInRecorder registra una entrada dentro de la transacción del caller.
type StockInRecorder interface {
	RecordStockInTx(ctx context.Context, repos repository.Repos, in ledger.StockInInput) (*entity.StockIn, error)
}
