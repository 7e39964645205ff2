package entity

import "github.com/shopspring/decimal"

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateProductRequest uses pointers so that absent fields can be told apart
// from zero values. Stock defaults to 0 when omitted.
type CreateProductRequest struct {
	Name       string           `json:"name" validate:"required"`
	Price      *decimal.Decimal `json:"price" validate:"required"`
	Stock      *int64           `json:"stock" validate:"omitempty,gte=0"`
	CategoryID *int64           `json:"category_id" validate:"required,gt=0"`
}

// NewCategory is a validated category insert.
type NewCategory struct {
	Name string
}

// NewProduct is a validated product insert.
type NewProduct struct {
	Name       string
	Price      decimal.Decimal
	Stock      int64
	CategoryID int64
}

// Response is the envelope of every API response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}
