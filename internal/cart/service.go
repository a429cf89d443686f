// Package cart implements the cart half of the commerce workflow: adding,
// removing and listing entries ahead of checkout.
package cart

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/relooped/reloop-backend/pkg/db/models"
	pkgerrors "github.com/relooped/reloop-backend/pkg/errors"
	"github.com/relooped/reloop-backend/pkg/store"
)

// Item is a cart entry joined with the live product and its seller.
type Item struct {
	CartEntryID    int64          `json:"cart_entry_id"`
	AddedAt        time.Time      `json:"added_at"`
	Product        models.Product `json:"product"`
	SellerUsername string         `json:"seller_username"`
}

// Service defines the cart operations.
type Service interface {
	AddToCart(ctx context.Context, userID, productID int64) error
	RemoveFromCart(ctx context.Context, userID, productID int64) error
	ClearCart(ctx context.Context, userID int64) error
	GetCart(ctx context.Context, userID int64) ([]Item, error)
}

type service struct {
	db *store.Store
}

// NewService builds the cart service.
func NewService(db *store.Store) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("store required")
	}
	return &service{db: db}, nil
}

// AddToCart creates a cart entry after the guard checks: the product must
// exist, must not belong to the requesting user, and must not already be in
// their cart.
func (s *service) AddToCart(_ context.Context, userID, productID int64) error {
	return s.db.Write(func() error {
		product, ok := s.db.Products.Get(productID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if product.SellerID == userID {
			return pkgerrors.New(pkgerrors.CodeConflict, "cannot add your own listing to the cart")
		}

		_, exists := s.db.CartEntries.First(func(e *models.CartEntry) bool {
			return e.UserID == userID && e.ProductID == productID
		})
		if exists {
			return pkgerrors.New(pkgerrors.CodeConflict, "listing is already in the cart")
		}

		s.db.CartEntries.Insert(&models.CartEntry{UserID: userID, ProductID: productID})
		return nil
	})
}

// RemoveFromCart deletes exactly one entry for the (user, product) pair.
func (s *service) RemoveFromCart(_ context.Context, userID, productID int64) error {
	return s.db.Write(func() error {
		entry, ok := s.db.CartEntries.First(func(e *models.CartEntry) bool {
			return e.UserID == userID && e.ProductID == productID
		})
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "listing is not in the cart")
		}
		if changed := s.db.CartEntries.Delete(entry.ID); changed == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "listing is not in the cart")
		}
		return nil
	})
}

// ClearCart removes every entry the user holds. Clearing an already-empty
// cart is a no-op, not an error.
func (s *service) ClearCart(_ context.Context, userID int64) error {
	return s.db.Write(func() error {
		s.db.CartEntries.DeleteWhere(func(e *models.CartEntry) bool {
			return e.UserID == userID
		})
		return nil
	})
}

// GetCart returns the user's cart joined with live products, newest listing
// first.
func (s *service) GetCart(_ context.Context, userID int64) ([]Item, error) {
	var items []Item
	err := s.db.Read(func() error {
		entries := s.db.CartEntries.List(func(e *models.CartEntry) bool {
			return e.UserID == userID
		})
		for _, entry := range entries {
			product, ok := s.db.Products.Get(entry.ProductID)
			if !ok {
				// The delete cascade keeps this from happening; skip rather
				// than fail the whole read if it ever does.
				continue
			}
			item := Item{
				CartEntryID:    entry.ID,
				AddedAt:        entry.CreatedAt,
				Product:        *product,
				SellerUsername: "Unknown",
			}
			if seller, ok := s.db.Users.Get(product.SellerID); ok {
				item.SellerUsername = seller.Username
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Product.CreatedAt.After(items[j].Product.CreatedAt)
	})
	return items, nil
}
