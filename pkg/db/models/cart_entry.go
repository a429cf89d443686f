package models

// CartEntry links a buyer to a live product. At most one entry exists per
// (user, product) pair, and the referenced product always exists: deleting a
// product cascades through every cart.
type CartEntry struct {
	Meta
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
}
