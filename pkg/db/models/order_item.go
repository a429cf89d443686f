package models

import (
	"github.com/shopspring/decimal"

	"github.com/relooped/reloop-backend/pkg/enums"
)

// OrderItem snapshots a product at purchase time. The copy is deliberately
// decoupled from the live Product so later edits or deletion never rewrite
// purchase history.
type OrderItem struct {
	Meta
	OrderID     int64           `json:"order_id"`
	ProductID   int64           `json:"product_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    enums.Category  `json:"category"`
	Price       decimal.Decimal `json:"price"`
}
