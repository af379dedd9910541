package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

func pageParams(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultLimit), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}

func productFilter(c *fiber.Ctx) (repository.ProductFilter, error) {
	f := repository.ProductFilter{Search: c.Query("search")}
	categoryID, err := idParam(c, "category_id")
	if err != nil {
		return f, err
	}
	f.CategoryID = categoryID
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return f, domain.NewValidationError("is_active", "is_active must be a boolean")
		}
		f.IsActive = &active
	}
	return f, nil
}

// stockFilter from y to son fechas (YYYY-MM-DD) inclusivas.
func stockFilter(c *fiber.Ctx) (repository.StockFilter, error) {
	f := repository.StockFilter{Search: c.Query("search")}
	productID, err := idParam(c, "product_id")
	if err != nil {
		return f, err
	}
	f.ProductID = productID
	from, err := parseDate("from", c.Query("from"))
	if err != nil {
		return f, err
	}
	if !from.IsZero() {
		f.From = &from
	}
	to, err := parseDate("to", c.Query("to"))
	if err != nil {
		return f, err
	}
	if !to.IsZero() {
		end := to.Add(24*time.Hour - time.Nanosecond)
		f.To = &end
	}
	return f, nil
}

// idParam filtro opcional por id; si viene debe ser un UUID.
func idParam(c *fiber.Ctx, field string) (string, error) {
	raw := c.Query(field)
	if raw == "" {
		return "", nil
	}
	if _, err := uuid.Parse(raw); err != nil {
		return "", domain.NewValidationError(field, field+" must be a valid UUID")
	}
	return raw, nil
}

// parseDate vacío = fecha cero.
func parseDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, field+" must be a date (YYYY-MM-DD)")
	}
	return t, nil
}
