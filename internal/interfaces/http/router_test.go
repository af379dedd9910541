package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-ledger/internal/application/catalog"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/importer"
	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/application/report"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/domain/stock"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/stock-ledger/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newTestApp arma la API completa sobre el almacén en memoria.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	ledgerUC := ledger.NewUseCase(store, repos, stock.NewBatchIDAllocator(), zerolog.Nop())
	resolver := catalog.NewResolver(catalog.Defaults{Category: "General", Unit: "Unit"})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC: usecase.NewCategoryUseCase(repos.Categories),
		UnitUC:     usecase.NewUnitUseCase(repos.Units),
		ProductUC:  usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Units),
		Ledger:     ledgerUC,
		Importer:   importer.New(store, resolver, ledgerUC, spreadsheet.NewExcelReader(), zerolog.Nop()),
		Report:     report.NewStockReportUseCase(repos.Levels, pdf.NewMarotoStockReportGenerator(), "Stock Ledger"),
		JWTSecret:  testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func upload(t *testing.T, app *fiber.App, path, filename string, content []byte) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", bearer(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func workbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// createProduct crea categoría, unidad y producto; devuelve el id del producto.
func createProduct(t *testing.T, app *fiber.App, code string) string {
	t.Helper()
	resp, cat := doJSON(t, app, http.MethodPost, "/api/categories", dto.CreateCategoryRequest{Name: "Bebidas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, unit := doJSON(t, app, http.MethodPost, "/api/units", dto.CreateUnitRequest{Name: "Botella"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, product := doJSON(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{
		Name:                "Agua",
		Code:                code,
		CategoryID:          cat["id"].(string),
		UnitOfMeasurementID: unit["id"].(string),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return product["id"].(string)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_SinToken_Retorna401(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProducts_CrearYListar(t *testing.T) {
	app := newTestApp(t)
	id := createProduct(t, app, "AG-1")

	resp, body := doJSON(t, app, http.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "AG-1", body["code"])
	assert.Equal(t, true, body["is_active"], "is_active omitido = true")

	resp, body = doJSON(t, app, http.MethodGet, "/api/products?search=ag-&is_active=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 1)
}

func TestProducts_CodigoDuplicado_Retorna409(t *testing.T) {
	app := newTestApp(t)
	id := createProduct(t, app, "AG-1")
	_, product := doJSON(t, app, http.MethodGet, "/api/products/"+id, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{
		Name:                "Otra agua",
		Code:                "AG-1",
		CategoryID:          product["category_id"].(string),
		UnitOfMeasurementID: product["unit_of_measurement_id"].(string),
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body["code"])
	assert.Equal(t, "code", body["field"])
}

func TestProducts_NombreVacio_Retorna400ConCampo(t *testing.T) {
	app := newTestApp(t)
	resp, body := doJSON(t, app, http.MethodPost, "/api/products", map[string]string{
		"name": "  ", "code": "X", "category_id": "c", "unit_of_measurement_id": "u",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Equal(t, "name", body["field"])
}

func TestProducts_FiltroIsActiveInvalido_Retorna400(t *testing.T) {
	app := newTestApp(t)
	resp, body := doJSON(t, app, http.MethodGet, "/api/products?is_active=quizas", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "is_active", body["field"])
}

func TestCategories_Inexistente_Retorna404(t *testing.T) {
	app := newTestApp(t)
	resp, body := doJSON(t, app, http.MethodGet, "/api/categories/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestCategories_EliminarBorraProductosEnCascada(t *testing.T) {
	app := newTestApp(t)
	id := createProduct(t, app, "AG-1")
	_, product := doJSON(t, app, http.MethodGet, "/api/products/"+id, nil)

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/categories/"+product["category_id"].(string), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_BodyInvalido_Retorna400(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/units", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "INVALID_BODY")
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de existencias
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_FlujoEntradaSalida(t *testing.T) {
	app := newTestApp(t)
	id := createProduct(t, app, "AG-1")

	resp, in := doJSON(t, app, http.MethodPost, "/api/stock-ins", map[string]interface{}{
		"product_id": id, "rate": 2.5, "quantity": 10, "date_of_purchase": "2024-03-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, in["batch_id"], 4, "batch_id generado de 4 caracteres")
	assert.Equal(t, "2024-03-01", in["date_of_purchase"])

	resp, body := doJSON(t, app, http.MethodPost, "/api/stock-outs", map[string]interface{}{"product_id": id, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "quantity", body["field"])
	assert.Equal(t, stock.MsgNullQuantity, body["message"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/stock-outs", map[string]interface{}{"product_id": id, "quantity": 15})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Equal(t, "insufficient stock: available=10, requested=15", body["message"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/stock-outs", map[string]interface{}{"product_id": id, "quantity": 4})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 6, body["available_quantity"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/products/"+id+"/available-quantity", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 6, body["available_quantity"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/stock-outs?product_id="+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	assert.EqualValues(t, 6, items[0].(map[string]interface{})["available_quantity"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/stock/levels", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total"])
}

func TestStock_SalidaSinEntradas_Retorna400(t *testing.T) {
	app := newTestApp(t)
	id := createProduct(t, app, "AG-1")

	resp, body := doJSON(t, app, http.MethodPost, "/api/stock-outs", map[string]interface{}{"product_id": id, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "product", body["field"])
	assert.Equal(t, stock.MsgNoStock, body["message"])
}

func TestStock_FechaInvalidaEnFiltro_Retorna400(t *testing.T) {
	app := newTestApp(t)
	resp, body := doJSON(t, app, http.MethodGet, "/api/stock-ins?from=01/03/2024", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "from", body["field"])
}

func TestRouter_IDMalFormado(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/products/abc/available-quantity", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/stock-outs", map[string]interface{}{"product_id": "abc", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/categories/abc", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// filtros por id: 400 con el campo
	for _, tc := range []struct{ path, field string }{
		{"/api/stock-ins?product_id=abc", "product_id"},
		{"/api/stock-outs?product_id=abc", "product_id"},
		{"/api/products?category_id=abc", "category_id"},
		{"/api/stock/levels?category_id=abc", "category_id"},
	} {
		resp, body := doJSON(t, app, http.MethodGet, tc.path, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, tc.path)
		assert.Equal(t, tc.field, body["field"], tc.path)
	}
}

func TestStock_ReportePDF(t *testing.T) {
	app := newTestApp(t)
	createProduct(t, app, "AG-1")

	req := httptest.NewRequest(http.MethodGet, "/api/stock/report.pdf", nil)
	req.Header.Set("Authorization", bearer(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "stock_report_")
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Importaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestImports_StockIns_BatchRepetidoSeReasigna(t *testing.T) {
	app := newTestApp(t)
	content := workbook(t, [][]interface{}{
		{"product_code", "product_name", "rate", "quantity", "batch_id"},
		{"AG-1", "Agua", "1.50", "10", "AB12"},
		{"AG-1", "Agua", "1.50", "5", "AB12"},
	})

	resp, body := upload(t, app, "/api/imports/stock-ins", "entradas.xlsx", content)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, importer.StatusSuccess, body["status"])
	assert.Equal(t, importer.MsgStockInsUploaded, body["message"])
	assert.EqualValues(t, 2, body["rows_applied"])
	assert.Empty(t, body["warnings"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/stock-ins?search=AG-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := body["items"].([]interface{})
	require.Len(t, items, 2)
	first := items[0].(map[string]interface{})["batch_id"]
	second := items[1].(map[string]interface{})["batch_id"]
	assert.NotEqual(t, first, second, "el batch_id repetido se reemplaza por uno generado")
	assert.Contains(t, []interface{}{first, second}, "AB12")

	resp, body = doJSON(t, app, http.MethodGet, "/api/stock/levels?search=AG-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	levels := body["levels"].([]interface{})
	require.Len(t, levels, 1)
	assert.EqualValues(t, 15, levels[0].(map[string]interface{})["available"])
}

func TestImports_Products_ErrorDeFila_Retorna422(t *testing.T) {
	app := newTestApp(t)
	content := workbook(t, [][]interface{}{
		{"category", "unit_of_measurement", "code", "name", "is_active"},
		{"Bebidas", "Botella", "AG-1", "Agua", "yes"},
		{"Bebidas", "Botella", "", "Sin código", "yes"},
	})

	resp, body := upload(t, app, "/api/imports/products", "productos.xlsx", content)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, importer.StatusPartial, body["status"])
	assert.Contains(t, body["message"], "1 rows imported, error on row 3")
}

func TestImports_ArchivoNoXlsx_Retorna400(t *testing.T) {
	app := newTestApp(t)
	resp, body := upload(t, app, "/api/imports/products", "productos.csv", []byte("a,b\n"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "file", body["field"])
}

func TestImports_ColumnasFaltantes_Retorna400(t *testing.T) {
	app := newTestApp(t)
	content := workbook(t, [][]interface{}{{"product_code", "rate"}, {"AG-1", "1"}})

	resp, body := upload(t, app, "/api/imports/stock-ins", "entradas.xlsx", content)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "file", body["field"])
}
