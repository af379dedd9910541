package dto

import "time"

// CreateProductRequest entrada para crear un producto. IsActive omitido = true.
type CreateProductRequest struct {
	Name                string `json:"name" validate:"notblank,max=100"`
	Code                string `json:"code" validate:"notblank,max=100"`
	CategoryID          string `json:"category_id" validate:"required"`
	UnitOfMeasurementID string `json:"unit_of_measurement_id" validate:"required"`
	IsActive            *bool  `json:"is_active"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name                *string `json:"name" validate:"omitempty,notblank,max=100"`
	Code                *string `json:"code" validate:"omitempty,notblank,max=100"`
	CategoryID          *string `json:"category_id" validate:"omitempty,notblank"`
	UnitOfMeasurementID *string `json:"unit_of_measurement_id" validate:"omitempty,notblank"`
	IsActive            *bool   `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Code                string    `json:"code"`
	CategoryID          string    `json:"category_id"`
	UnitOfMeasurementID string    `json:"unit_of_measurement_id"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// AvailableQuantityResponse cantidad disponible de un producto.
type AvailableQuantityResponse struct {
	ProductID         string `json:"product_id"`
	AvailableQuantity int64  `json:"available_quantity"`
}
