// Package importer carga planillas de productos y de entradas de stock.
// Las filas se procesan en orden y cada una se confirma en su propia transacción:
// un error de fila aborta la importación sin deshacer las filas ya aplicadas.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/catalog"
	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/domain/stock"
)

// Columnas de las planillas.
const (
	ColCategory    = "category"
	ColUnit        = "unit_of_measurement"
	ColCode        = "code"
	ColName        = "name"
	ColIsActive    = "is_active"
	ColProductCode = "product_code"
	ColProductName = "product_name"
	ColRate        = "rate"
	ColQuantity    = "quantity"
	ColBatchID     = "batch_id"
)

// Importer caso de uso de importación masiva.
type Importer struct {
	txRunner ledger.TxRunner
	resolver *catalog.Resolver
	stockIns StockInRecorder
	reader   SheetReader
	log      zerolog.Logger
}

// New construye el importador.
func New(txRunner ledger.TxRunner, resolver *catalog.Resolver, stockIns StockInRecorder, reader SheetReader, log zerolog.Logger) *Importer {
	return &Importer{
		txRunner: txRunner,
		resolver: resolver,
		stockIns: stockIns,
		reader:   reader,
		log:      log,
	}
}

// ImportProductFile lee la planilla y ejecuta ImportProductSheet.
func (im *Importer) ImportProductFile(ctx context.Context, r io.Reader) (*Result, error) {
	sheet, err := im.reader.ReadFirstSheet(ctx, r)
	if err != nil {
		return nil, err
	}
	return im.ImportProductSheet(ctx, sheet)
}

// ImportStockInFile lee la planilla y ejecuta ImportStockInSheet.
func (im *Importer) ImportStockInFile(ctx context.Context, r io.Reader) (*Result, error) {
	sheet, err := im.reader.ReadFirstSheet(ctx, r)
	if err != nil {
		return nil, err
	}
	return im.ImportStockInSheet(ctx, sheet)
}

// ImportProductSheet por fila: get-or-create de categoría y unidad por nombre y upsert del
// producto por código. Cualquier error de fila aborta la importación.
// El error devuelto queda para fallos de archivo (columnas faltantes) o contexto cancelado;
// los errores de fila se informan en Result.
func (im *Importer) ImportProductSheet(ctx context.Context, sheet *Sheet) (*Result, error) {
	cols := sheet.columns()
	if err := cols.require(ColCategory, ColUnit, ColCode, ColName, ColIsActive); err != nil {
		return nil, err
	}

	res := &Result{}
	for i, row := range sheet.Rows {
		if blank(row) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rowNum := firstDataRow + i
		res.RowsTotal++

		err := im.importProductRow(ctx, cols, row)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			res.abort(rowNum, err)
			im.log.Warn().Err(err).Int("row", rowNum).Int("applied", res.RowsApplied).Msg("importación de productos abortada")
			return res, nil
		}
		res.RowsApplied++
	}

	res.succeed(MsgProductsUploaded)
	im.log.Info().Int("rows", res.RowsApplied).Msg("importación de productos completada")
	return res, nil
}

func (im *Importer) importProductRow(ctx context.Context, cols columns, row []string) error {
	active, err := parseActive(cols.get(row, ColIsActive))
	if err != nil {
		return err
	}
	fields := catalog.ProductFields{
		Code:     cols.get(row, ColCode),
		Name:     cols.get(row, ColName),
		Category: cols.get(row, ColCategory),
		Unit:     cols.get(row, ColUnit),
		IsActive: active,
	}
	return im.txRunner.Run(ctx, func(repos repository.Repos) error {
		_, err := im.resolver.UpsertProductByCode(ctx, repos, fields)
		return err
	})
}

// ImportStockInSheet por fila: valida rate/quantity, resuelve el producto (por código, si no por
// nombre), asigna batch_id y crea la entrada. Un error de datos aborta; un batch_id duplicado al
// insertar solo omite la fila con un aviso y sigue.
func (im *Importer) ImportStockInSheet(ctx context.Context, sheet *Sheet) (*Result, error) {
	cols := sheet.columns()
	if err := cols.require(ColRate, ColQuantity); err != nil {
		return nil, err
	}
	if !cols.has(ColProductCode) && !cols.has(ColProductName) {
		return nil, domain.NewValidationError("file", fmt.Sprintf("missing required columns: %s or %s", ColProductCode, ColProductName))
	}

	res := &Result{}
	for i, row := range sheet.Rows {
		if blank(row) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rowNum := firstDataRow + i
		res.RowsTotal++

		err := im.importStockInRow(ctx, cols, row)
		var conflict *domain.ConflictError
		switch {
		case err == nil:
			res.RowsApplied++
		case errors.As(err, &conflict) && conflict.Field == ColBatchID:
			res.warn(rowNum, fmt.Sprintf(msgDuplicateBatchID, conflict.Value))
			im.log.Warn().Int("row", rowNum).Str("batch_id", conflict.Value).Msg("batch_id duplicado, fila omitida")
		default:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			res.abort(rowNum, err)
			im.log.Warn().Err(err).Int("row", rowNum).Int("applied", res.RowsApplied).Msg("importación de entradas abortada")
			return res, nil
		}
	}

	res.succeed(MsgStockInsUploaded)
	im.log.Info().Int("rows", res.RowsApplied).Int("skipped", res.RowsSkipped).Msg("importación de entradas completada")
	return res, nil
}

func (im *Importer) importStockInRow(ctx context.Context, cols columns, row []string) error {
	code, name := cols.get(row, ColProductCode), cols.get(row, ColProductName)
	if code == "" && name == "" {
		return domain.NewValidationError("product", MsgProductRequired)
	}
	rateRaw, qtyRaw := cols.get(row, ColRate), cols.get(row, ColQuantity)
	rate, quantity, err := parseRateQuantity(rateRaw, qtyRaw)
	if err != nil {
		return err
	}
	batchID := cols.get(row, ColBatchID)
	if err := stock.ValidateBatchID(batchID); err != nil {
		return err
	}

	return im.txRunner.Run(ctx, func(repos repository.Repos) error {
		var productID string
		if code != "" {
			p, err := im.resolver.GetOrCreateProductByCode(ctx, repos, code, name)
			if err != nil {
				return err
			}
			productID = p.ID
		} else {
			p, err := im.resolver.GetOrCreateProductByName(ctx, repos, name)
			if err != nil {
				return err
			}
			productID = p.ID
		}
		_, err := im.stockIns.RecordStockInTx(ctx, repos, ledger.StockInInput{
			ProductID: productID,
			Rate:      rate,
			Quantity:  quantity,
			BatchID:   batchID,
		})
		return err
	})
}

func parseRateQuantity(rateRaw, qtyRaw string) (decimal.Decimal, int64, error) {
	invalid := domain.NewValidationError("rate", fmt.Sprintf(msgInvalidRateQty, rateRaw, qtyRaw))
	rate, err := stock.ParseRate(rateRaw)
	if err != nil {
		return decimal.Zero, 0, invalid
	}
	quantity, err := stock.ParseQuantity(qtyRaw)
	if err != nil {
		invalid.Field = "quantity"
		return decimal.Zero, 0, invalid
	}
	return rate, quantity, nil
}

// parseActive interpreta is_active; vacío equivale a activo.
func parseActive(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return true, nil
	case "yes", "y", "si", "sí":
		return true, nil
	case "no", "n":
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.NewValidationError(ColIsActive, fmt.Sprintf("is_active must be a boolean, got %q", raw))
	}
	return v, nil
}
