package http

import (
	"context"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/importer"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// ImportHandler recibe planillas .xlsx (campo multipart "file") para carga masiva (protegido).
type ImportHandler struct {
	im *importer.Importer
}

// NewImportHandler construye el handler.
func NewImportHandler(im *importer.Importer) *ImportHandler {
	return &ImportHandler{im: im}
}

// Products godoc
// @Summary      Importar productos desde planilla
// @Description  Columnas: category, name, code, unit_of_measurement, is_active. Upsert por code.
// @Tags         imports
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilla .xlsx"
// @Success      200   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ImportResultResponse
// @Router       /api/imports/products [post]
func (h *ImportHandler) Products(c *fiber.Ctx) error {
	return h.run(c, h.im.ImportProductFile)
}

// StockIns godoc
// @Summary      Importar entradas desde planilla
// @Description  Columnas: rate, quantity y product_code o product_name; batch_id opcional.
// @Description  Los batch_id repetidos se omiten con aviso; cualquier otro error de fila detiene la importación.
// @Tags         imports
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilla .xlsx"
// @Success      200   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ImportResultResponse
// @Router       /api/imports/stock-ins [post]
func (h *ImportHandler) StockIns(c *fiber.Ctx) error {
	return h.run(c, h.im.ImportStockInFile)
}

func (h *ImportHandler) run(c *fiber.Ctx, importFile func(context.Context, io.Reader) (*importer.Result, error)) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, domain.NewValidationError("file", "file is required"))
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
		return respondError(c, domain.NewValidationError("file", "only .xlsx files are accepted"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	res, err := importFile(c.Context(), file)
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusOK
	if res.Aborted() {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(toImportResultResponse(res))
}

func toImportResultResponse(res *importer.Result) dto.ImportResultResponse {
	out := dto.ImportResultResponse{
		Status:      res.Status,
		Message:     res.Message,
		RowsTotal:   res.RowsTotal,
		RowsApplied: res.RowsApplied,
		RowsSkipped: res.RowsSkipped,
		Warnings:    make([]dto.ImportRowIssue, 0, len(res.Warnings)),
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, dto.ImportRowIssue{Row: w.Row, Message: w.Message})
	}
	if res.Failure != nil {
		out.Error = &dto.ImportRowIssue{Row: res.Failure.Row, Message: res.Failure.Message}
	}
	return out
}
