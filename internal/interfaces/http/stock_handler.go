package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/application/report"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StockHandler maneja entradas, salidas y existencias (protegido).
type StockHandler struct {
	ledger *ledger.UseCase
	report *report.StockReportUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledgerUC *ledger.UseCase, reportUC *report.StockReportUseCase) *StockHandler {
	return &StockHandler{ledger: ledgerUC, report: reportUC}
}

// CreateStockIn godoc
// @Summary      Registrar entrada (lote)
// @Description  batch_id vacío o repetido se reemplaza por uno generado de 4 caracteres.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockInRequest  true  "product_id, rate, quantity, date_of_purchase, batch_id"
// @Success      201   {object}  dto.StockInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-ins [post]
func (h *StockHandler) CreateStockIn(c *fiber.Ctx) error {
	var in dto.CreateStockInRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	date, err := parseDate("date_of_purchase", in.DateOfPurchase)
	if err != nil {
		return respondError(c, err)
	}
	created, err := h.ledger.RecordStockIn(c.Context(), ledger.StockInInput{
		ProductID:      in.ProductID,
		Rate:           in.Rate,
		Quantity:       in.Quantity,
		DateOfPurchase: date,
		BatchID:        in.BatchID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockInResponse(created))
}

// ListStockIns godoc
// @Summary      Listar entradas
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        search      query  string  false  "Búsqueda por nombre o código del producto"
// @Param        from        query  string  false  "Fecha de compra desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Fecha de compra hasta (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200         {object}  dto.StockInListResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/stock-ins [get]
func (h *StockHandler) ListStockIns(c *fiber.Ctx) error {
	f, err := stockFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	p := pageParams(c)
	list, err := h.ledger.ListStockIns(c.Context(), f, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockInResponse, 0, len(list))
	for _, si := range list {
		items = append(items, toStockInResponse(si))
	}
	return c.JSON(dto.StockInListResponse{Items: items, Page: p.Response()})
}

// CreateStockOut godoc
// @Summary      Registrar salida
// @Description  Rechaza cantidad cero, producto vacío, producto sin entradas y cantidades mayores a lo disponible.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockOutRequest  true  "product_id, quantity, date_of_disbursement"
// @Success      201   {object}  dto.StockOutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-outs [post]
func (h *StockHandler) CreateStockOut(c *fiber.Ctx) error {
	var in dto.CreateStockOutRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	date, err := parseDate("date_of_disbursement", in.DateOfDisbursement)
	if err != nil {
		return respondError(c, err)
	}
	created, err := h.ledger.RecordStockOut(c.Context(), ledger.StockOutInput{
		ProductID:          in.ProductID,
		Quantity:           in.Quantity,
		DateOfDisbursement: date,
	})
	if err != nil {
		return respondError(c, err)
	}
	out := toStockOutResponse(*created)
	if available, err := h.ledger.AvailableQuantity(c.Context(), created.ProductID); err == nil {
		out.AvailableQuantity = &available
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListStockOuts godoc
// @Summary      Listar salidas
// @Description  Cada fila incluye la cantidad disponible actual de su producto.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        search      query  string  false  "Búsqueda por nombre o código del producto"
// @Param        from        query  string  false  "Fecha de despacho desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Fecha de despacho hasta (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200         {object}  dto.StockOutListResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/stock-outs [get]
func (h *StockHandler) ListStockOuts(c *fiber.Ctx) error {
	f, err := stockFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	p := pageParams(c)
	views, err := h.ledger.ListStockOuts(c.Context(), f, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockOutResponse, 0, len(views))
	for _, v := range views {
		item := toStockOutResponse(v.StockOut)
		available := v.AvailableQuantity
		item.AvailableQuantity = &available
		items = append(items, item)
	}
	return c.JSON(dto.StockOutListResponse{Items: items, Page: p.Response()})
}

// Levels godoc
// @Summary      Existencias por producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "Búsqueda por nombre o código"
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        is_active    query  bool    false  "Filtrar por estado"
// @Success      200          {array}   dto.StockLevelResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/stock/levels [get]
func (h *StockHandler) Levels(c *fiber.Ctx) error {
	f, err := productFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	levels, err := h.ledger.StockLevels(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.StockLevelResponse{
			ProductID:   l.ProductID,
			ProductCode: l.ProductCode,
			ProductName: l.ProductName,
			IsActive:    l.IsActive,
			TotalIn:     l.TotalIn,
			TotalOut:    l.TotalOut,
			Available:   l.Available,
		})
	}
	return c.JSON(fiber.Map{
		"total":  len(out),
		"levels": out,
	})
}

// ReportPDF godoc
// @Summary      Reporte de existencias en PDF
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        search       query  string  false  "Búsqueda por nombre o código"
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        is_active    query  bool    false  "Filtrar por estado"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/report.pdf [get]
func (h *StockHandler) ReportPDF(c *fiber.Ctx) error {
	f, err := productFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	pdfBytes, filename, err := h.report.DownloadPDF(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(pdfBytes)
}

func toStockInResponse(si *entity.StockIn) dto.StockInResponse {
	return dto.StockInResponse{
		ID:             si.ID,
		ProductID:      si.ProductID,
		Rate:           si.Rate,
		DateOfPurchase: si.DateOfPurchase.Format(dto.DateLayout),
		Quantity:       si.Quantity,
		BatchID:        si.BatchID,
		CreatedAt:      si.CreatedAt,
	}
}

func toStockOutResponse(so entity.StockOut) dto.StockOutResponse {
	return dto.StockOutResponse{
		ID:                 so.ID,
		ProductID:          so.ProductID,
		DateOfDisbursement: so.DateOfDisbursement.Format(dto.DateLayout),
		Quantity:           so.Quantity,
		CreatedAt:          so.CreatedAt,
	}
}
