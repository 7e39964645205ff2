package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products. Name is unique and stored trimmed.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product is a catalog item. CategoryID references Category.ID; deleting a
// referenced category is refused.
type Product struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int64           `json:"stock"`
	CategoryID int64           `json:"category_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CatalogStats is a point-in-time count used by the stats refresher.
type CatalogStats struct {
	Categories         int64
	Products           int64
	ProductsOutOfStock int64
}
