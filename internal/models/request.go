package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestDirection string

const (
	DirectionIn  RequestDirection = "in"
	DirectionOut RequestDirection = "out"
)

func (d RequestDirection) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Movement is a single line item inside a stock request: a product reference
// with the quantity moved and the unit price at ingestion time.
type Movement struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (m Movement) LineTotal() decimal.Decimal {
	return m.UnitPrice.Mul(decimal.NewFromInt(int64(m.Quantity)))
}

// StockRequest is an OCR-ingested invoice moving stock in or out.
type StockRequest struct {
	ID        string           `json:"id"`
	Direction RequestDirection `json:"direction"`
	Status    RequestStatus    `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Movements []Movement       `json:"movements"`
}

// Total is recomputed from the movements on every call rather than stored,
// so a request can never carry a stale aggregate.
func (r StockRequest) Total() decimal.Decimal {
	total := decimal.Zero
	for _, m := range r.Movements {
		total = total.Add(m.LineTotal())
	}
	return total
}
