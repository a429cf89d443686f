package models

import (
	"github.com/shopspring/decimal"

	"github.com/relooped/reloop-backend/pkg/enums"
)

// Order is the immutable result of a checkout.
type Order struct {
	Meta
	UserID      int64             `json:"user_id"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Status      enums.OrderStatus `json:"status"`
}
