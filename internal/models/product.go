package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus is derived from (CurrentStock, MinStock) and never persisted,
// so it cannot diverge from the quantities it is computed from.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out_of_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusInStock    StockStatus = "in_stock"
)

// DeriveStatus classifies a stock level against its reorder threshold.
// A stock level equal to the threshold counts as low, not in stock.
func DeriveStatus(stock, minStock int) StockStatus {
	switch {
	case stock <= 0:
		return StatusOutOfStock
	case stock <= minStock:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Product is the canonical record every upstream product shape normalizes into.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	SKU          string          `json:"sku"`
	CurrentStock int             `json:"current_stock"`
	MinStock     int             `json:"min_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Provider     string          `json:"provider,omitempty"`
	State        string          `json:"state"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (p Product) Status() StockStatus {
	return DeriveStatus(p.CurrentStock, p.MinStock)
}
