package importer_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-ledger/internal/application/catalog"
	"github.com/jhoicas/stock-ledger/internal/application/importer"
	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/domain/stock"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/spreadsheet"
)

type fixture struct {
	store    *memory.Store
	ledger   *ledger.UseCase
	importer *importer.Importer
}

func newFixture(t *testing.T, runner ledger.TxRunner, store *memory.Store) *fixture {
	t.Helper()
	uc := ledger.NewUseCase(runner, store.Repos(), stock.NewBatchIDAllocator(), zerolog.Nop())
	resolver := catalog.NewResolver(catalog.Defaults{Category: "General", Unit: "Unit"})
	im := importer.New(runner, resolver, uc, spreadsheet.NewExcelReader(), zerolog.Nop())
	return &fixture{store: store, ledger: uc, importer: im}
}

func setup(t *testing.T) *fixture {
	store := memory.NewStore()
	return newFixture(t, store, store)
}

func (f *fixture) products(t *testing.T) []*entity.Product {
	t.Helper()
	list, err := f.store.Repos().Products.List(context.Background(), repository.ProductFilter{}, 0, 0)
	require.NoError(t, err)
	return list
}

func (f *fixture) stockIns(t *testing.T) []*entity.StockIn {
	t.Helper()
	list, err := f.store.Repos().StockIns.List(context.Background(), repository.StockFilter{}, 0, 0)
	require.NoError(t, err)
	return list
}

var productHeader = []string{"category", "unit_of_measurement", "code", "name", "is_active"}

func TestImportProductSheet_UpsertPorCodigo(t *testing.T) {
	f := setup(t)
	sheet := &importer.Sheet{
		Header: productHeader,
		Rows: [][]string{
			{"Bebidas", "Botella", "C-1", "Agua", "true"},
			{"Snacks", "Caja", "C-1", "Agua con gas", "false"},
		},
	}

	res, err := f.importer.ImportProductSheet(context.Background(), sheet)
	require.NoError(t, err)
	assert.Equal(t, importer.StatusSuccess, res.Status)
	assert.Equal(t, importer.MsgProductsUploaded, res.Message)
	assert.Equal(t, 2, res.RowsApplied)

	products := f.products(t)
	require.Len(t, products, 1, "mismo código = un solo producto")
	p := products[0]
	assert.Equal(t, "Agua con gas", p.Name)
	assert.False(t, p.IsActive)

	cat, err := f.store.Repos().Categories.GetByName(context.Background(), "Snacks")
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, cat.ID, p.CategoryID)
	unit, err := f.store.Repos().Units.GetByName(context.Background(), "Caja")
	require.NoError(t, err)
	require.NotNil(t, unit)
	assert.Equal(t, unit.ID, p.UnitOfMeasurementID)
}

func TestImportProductSheet_ReutilizaCategoria(t *testing.T) {
	f := setup(t)
	sheet := &importer.Sheet{
		Header: append([]string{"extra"}, productHeader...),
		Rows: [][]string{
			{"x", "Bebidas", "Botella", "C-1", "Agua", ""},
			{"y", "Bebidas", "Botella", "C-2", "Jugo", "1"},
		},
	}
	res, err := f.importer.ImportProductSheet(context.Background(), sheet)
	require.NoError(t, err)
	assert.Equal(t, importer.StatusSuccess, res.Status)

	cats, err := f.store.Repos().Categories.List(context.Background(), "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
	for _, p := range f.products(t) {
		assert.True(t, p.IsActive, "is_active vacío equivale a activo")
	}
}

func TestImportProductSheet_AbortaEnErrorDeFila(t *testing.T) {
	f := setup(t)
	sheet := &importer.Sheet{
		Header: productHeader,
		Rows: [][]string{
			{"Bebidas", "Botella", "C-1", "Agua", "true"},
			{"", "", "", "", ""},
			{"Bebidas", "Botella", "", "Sin código", "true"},
			{"Bebidas", "Botella", "C-3", "Nunca", "true"},
		},
	}

	res, err := f.importer.ImportProductSheet(context.Background(), sheet)
	require.NoError(t, err)
	assert.Equal(t, importer.StatusPartial, res.Status)
	assert.Equal(t, "1 rows imported, error on row 4: code is required", res.Message)
	require.NotNil(t, res.Failure)
	assert.Equal(t, 4, res.Failure.Row)
	assert.Len(t, f.products(t), 1, "las filas previas sobreviven y las siguientes no se aplican")
}

func TestImportProductSheet_ColumnasFaltantes(t *testing.T) {
	f := setup(t)
	_, err := f.importer.ImportProductSheet(context.Background(), &importer.Sheet{Header: []string{"code", "name"}})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "file", vErr.Field)
	assert.Contains(t, vErr.Message, "category")
	assert.Contains(t, vErr.Message, "is_active")
}

func TestImportProductSheet_IsActiveInvalido(t *testing.T) {
	f := setup(t)
	sheet := &importer.Sheet{
		Header: productHeader,
		Rows:   [][]string{{"Bebidas", "Botella", "C-1", "Agua", "quizás"}},
	}
	res, err := f.importer.ImportProductSheet(context.Background(), sheet)
	require.NoError(t, err)
	assert.Equal(t, importer.StatusFailed, res.Status)
	assert.Empty(t, f.products(t))
}

var stockInHeader = []string{"product_code", "product_name", "rate", "quantity", "batch_id"}

func TestImportStockInSheet_TarifaInvalidaAborta(t *testing.T) {
	f := setup(t)
	sheet := &importer.Sheet{
		Header: stockInHeader,
		Rows: [][]string{
			{"P1", "Uno", "10", "5", ""},
			{"P2", "Dos", "abc", "3", ""},
			{"P3", "Tres", "1", "1", ""},
		},
	}

	res, err := f.importer.ImportStockInSheet(context.Background(), sheet)
	require.NoError(t, err)
	assert.Equal(t, importer.StatusPartial, res.Status)
	assert.Equal(t, 1, res.RowsApplied)
	assert.Equal(t,
		"1 rows imported, error on row 3: Rate and quantity must be decimal numbers. Invalid data: Rate: abc, Quantity: 3",
		res.Message)

	ins := f.stockIns(t)
	require.Len(t, ins, 1)
	codes := map[string]bool{}
	for _, p := range f.products(t) {
		codes[p.Code] = true
	}
	assert.True(t, codes["P1"])
	assert.False(t, codes["P2"], "una fila abortada no deja efectos")
	assert.False(t, codes["P3"], "las filas siguientes no se aplican")
}

func TestImportStockInSheet_BatchRepetidoSeReasigna(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	sheet := &importer.Sheet{
		Header: stockInHeader,
		Rows: [][]string{
			{"P1", "", "2.5", "10", "AAAA"},
			{"P1", "", "2.5", "4", "AAAA"},
		},
	}

	res, err := f.importer.ImportStockInSheet(ctx, sheet)
	require.NoError(t, err)
	assert.Equal(t, importer.StatusSuccess, res.Status)
	assert.Equal(t, importer.MsgStockInsUploaded, res.Message)
	assert.Empty(t, res.Warnings)

	ins := f.stockIns(t)
	require.Len(t, ins, 2)
	assert.NotEqual(t, ins[0].BatchID, ins[1].BatchID)

	products := f.products(t)
	require.Len(t, products, 1)
	assert.Equal(t, "P1", products[0].Name, "sin product_name se usa el código")

	available, err := f.ledger.AvailableQuantity(ctx, products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(14), available)
}

func TestImportStockInSheet_PorNombreUsaValoresPorDefecto(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	sheet := &importer.Sheet{
		Header: []string{"product_name", "rate", "quantity"},
		Rows: [][]string{
			{"Harina", "1.99", "3"},
			{"Harina", "2.01", "2"},
		},
	}
	res, err := f.importer.ImportStockInSheet(ctx, sheet)
	require.NoError(t, err)
	assert.Equal(t, importer.StatusSuccess, res.Status)

	products := f.products(t)
	require.Len(t, products, 1)
	p := products[0]
	assert.Equal(t, "Harina", p.Code)
	assert.True(t, p.IsActive)

	cat, err := f.store.Repos().Categories.GetByID(ctx, p.CategoryID)
	require.NoError(t, err)
	assert.Equal(t, "General", cat.Name)
	unit, err := f.store.Repos().Units.GetByID(ctx, p.UnitOfMeasurementID)
	require.NoError(t, err)
	assert.Equal(t, "Unit", unit.Name)
}

func TestImportStockInSheet_SinProducto(t *testing.T) {
	f := setup(t)
	sheet := &importer.Sheet{
		Header: stockInHeader,
		Rows:   [][]string{{"", "", "1", "1", ""}},
	}
	res, err := f.importer.ImportStockInSheet(context.Background(), sheet)
	require.NoError(t, err)
	assert.Equal(t, importer.StatusFailed, res.Status)
	assert.Equal(t, "0 rows imported, error on row 2: product code or name required", res.Message)
}

func TestImportStockInSheet_ColumnasFaltantes(t *testing.T) {
	f := setup(t)
	_, err := f.importer.ImportStockInSheet(context.Background(), &importer.Sheet{Header: []string{"rate", "quantity"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.importer.ImportStockInSheet(context.Background(), &importer.Sheet{Header: []string{"product_code", "rate"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// blindStockIns simula una carrera: ExistsBatchID no ve el lote ya insertado.
type blindStockIns struct {
	repository.StockInRepository
}

func (blindStockIns) ExistsBatchID(context.Context, string) (bool, error) { return false, nil }

type blindRunner struct{ store *memory.Store }

func (r blindRunner) Run(ctx context.Context, fn func(repository.Repos) error) error {
	return r.store.Run(ctx, func(repos repository.Repos) error {
		repos.StockIns = blindStockIns{repos.StockIns}
		return fn(repos)
	})
}

func TestImportStockInSheet_ConflictoOmiteFilaYSigue(t *testing.T) {
	store := memory.NewStore()
	f := newFixture(t, blindRunner{store}, store)
	sheet := &importer.Sheet{
		Header: stockInHeader,
		Rows: [][]string{
			{"P1", "", "1", "10", "AAAA"},
			{"P1", "", "1", "5", "AAAA"},
			{"P1", "", "1", "2", "BBBB"},
		},
	}

	res, err := f.importer.ImportStockInSheet(context.Background(), sheet)
	require.NoError(t, err)
	assert.Equal(t, importer.StatusSuccess, res.Status)
	assert.Equal(t, 2, res.RowsApplied)
	assert.Equal(t, 1, res.RowsSkipped)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, importer.RowIssue{Row: 3, Message: "Duplicate batch ID found: AAAA. Skipping row."}, res.Warnings[0])
	assert.Len(t, f.stockIns(t), 2)
}

func TestImportStockInFile_Xlsx(t *testing.T) {
	f := setup(t)
	x := excelize.NewFile()
	defer x.Close()
	sheet := x.GetSheetName(0)
	require.NoError(t, x.SetSheetRow(sheet, "A1", &[]interface{}{"product_code", "rate", "quantity"}))
	require.NoError(t, x.SetSheetRow(sheet, "A2", &[]interface{}{"P9", 3.25, 8}))
	buf, err := x.WriteToBuffer()
	require.NoError(t, err)

	res, err := f.importer.ImportStockInFile(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, importer.StatusSuccess, res.Status)

	ins := f.stockIns(t)
	require.Len(t, ins, 1)
	assert.Equal(t, "3.25", ins[0].Rate.StringFixed(2))
	assert.Equal(t, int64(8), ins[0].Quantity)
}
