// Package orders implements checkout and purchase history. Checkout converts
// a cart into an immutable order atomically: totals, item snapshots, cart
// clearing and seller sales counters all move inside one store write.
package orders

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/relooped/reloop-backend/internal/enrichment"
	"github.com/relooped/reloop-backend/pkg/db/models"
	"github.com/relooped/reloop-backend/pkg/enums"
	pkgerrors "github.com/relooped/reloop-backend/pkg/errors"
	"github.com/relooped/reloop-backend/pkg/store"
)

// OrderView is an order joined with its item snapshots.
type OrderView struct {
	models.Order
	Items []models.OrderItem `json:"items"`
}

// Service defines the order operations.
type Service interface {
	Checkout(ctx context.Context, userID int64) (*OrderView, error)
	PurchaseHistory(ctx context.Context, userID int64) ([]OrderView, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*OrderView, error)
}

type service struct {
	db *store.Store
}

// NewService builds the orders service.
func NewService(db *store.Store) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("store required")
	}
	return &service{db: db}, nil
}

// Checkout turns the user's cart into a completed order. The total is summed
// from live product prices at the moment of checkout, each item is snapshot
// into an order item, the cart is emptied, and every affected seller has
// their sales counter bumped and verification score recomputed.
func (s *service) Checkout(_ context.Context, userID int64) (*OrderView, error) {
	var view *OrderView
	err := s.db.Write(func() error {
		entries := s.db.CartEntries.List(func(e *models.CartEntry) bool {
			return e.UserID == userID
		})
		if len(entries) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
		}

		products := make([]*models.Product, 0, len(entries))
		total := decimal.Zero
		for _, entry := range entries {
			product, ok := s.db.Products.Get(entry.ProductID)
			if !ok {
				continue
			}
			products = append(products, product)
			total = total.Add(product.Price)
		}
		if len(products) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
		}

		order := &models.Order{
			UserID:      userID,
			TotalAmount: total,
			Status:      enums.OrderStatusCompleted,
		}
		s.db.Orders.Insert(order)

		items := make([]models.OrderItem, 0, len(products))
		for _, product := range products {
			item := &models.OrderItem{
				OrderID:     order.ID,
				ProductID:   product.ID,
				Title:       product.Title,
				Description: product.Description,
				Category:    product.Category,
				Price:       product.Price,
			}
			s.db.OrderItems.Insert(item)
			items = append(items, *item)
		}

		s.db.CartEntries.DeleteWhere(func(e *models.CartEntry) bool {
			return e.UserID == userID
		})

		// One sale per item, so a seller with several listings in the cart is
		// credited for each of them.
		now := s.db.Now()
		for _, product := range products {
			s.db.Users.Update(product.SellerID, func(u *models.User) {
				u.TotalSales++
				u.VerificationScore = enrichment.VerificationScore(u, now)
			})
		}

		view = &OrderView{Order: *order, Items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// PurchaseHistory lists the user's orders newest first, each with its item
// snapshots in insertion order.
func (s *service) PurchaseHistory(_ context.Context, userID int64) ([]OrderView, error) {
	var views []OrderView
	err := s.db.Read(func() error {
		orders := s.db.Orders.List(func(o *models.Order) bool {
			return o.UserID == userID
		})
		for _, order := range orders {
			views = append(views, OrderView{Order: *order, Items: s.itemsFor(order.ID)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views, nil
}

// GetOrder returns one of the user's orders. Another user's order reads as
// not found rather than forbidden, so order ids are not probeable.
func (s *service) GetOrder(_ context.Context, userID, orderID int64) (*OrderView, error) {
	var view *OrderView
	err := s.db.Read(func() error {
		order, ok := s.db.Orders.Get(orderID)
		if !ok || order.UserID != userID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		view = &OrderView{Order: *order, Items: s.itemsFor(order.ID)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// itemsFor must be called with the store lock held.
func (s *service) itemsFor(orderID int64) []models.OrderItem {
	rows := s.db.OrderItems.List(func(it *models.OrderItem) bool {
		return it.OrderID == orderID
	})
	items := make([]models.OrderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, *row)
	}
	return items
}
