// Package products owns the listing write paths: create, update and delete,
// with enrichment applied at write time so reads never recompute.
package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/relooped/reloop-backend/internal/enrichment"
	"github.com/relooped/reloop-backend/pkg/db/models"
	"github.com/relooped/reloop-backend/pkg/enums"
	pkgerrors "github.com/relooped/reloop-backend/pkg/errors"
	"github.com/relooped/reloop-backend/pkg/store"
)

// ListingInput carries the seller-editable fields of a listing. Every field is
// required on both create and update.
type ListingInput struct {
	Title       string
	Description string
	Category    string
	Price       decimal.Decimal
}

// Service defines the listing write operations.
type Service interface {
	Create(ctx context.Context, sellerID int64, input ListingInput) (int64, error)
	Update(ctx context.Context, productID, sellerID int64, input ListingInput) error
	Delete(ctx context.Context, productID, sellerID int64) error
}

type service struct {
	db *store.Store
}

// NewService builds the products service.
func NewService(db *store.Store) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("store required")
	}
	return &service{db: db}, nil
}

func (s *service) Create(_ context.Context, sellerID int64, input ListingInput) (int64, error) {
	category, err := validateListing(input)
	if err != nil {
		return 0, err
	}
	if sellerID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}

	var productID int64
	err = s.db.Write(func() error {
		if _, ok := s.db.Users.Get(sellerID); !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}

		product := &models.Product{
			Title:       input.Title,
			Description: input.Description,
			Category:    category,
			Price:       input.Price,
			SellerID:    sellerID,
		}
		enrich(product)
		productID = s.db.Products.Insert(product)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return productID, nil
}

func (s *service) Update(_ context.Context, productID, sellerID int64, input ListingInput) error {
	category, err := validateListing(input)
	if err != nil {
		return err
	}

	return s.db.Write(func() error {
		product, ok := s.db.Products.Get(productID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if product.SellerID != sellerID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "product does not belong to seller")
		}

		changed := s.db.Products.Update(productID, func(p *models.Product) {
			p.Title = input.Title
			p.Description = input.Description
			p.Category = category
			p.Price = input.Price
			enrich(p)
		})
		if changed == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil
	})
}

// Delete removes a listing and cascades the removal through every cart that
// references it, in one atomic step.
func (s *service) Delete(_ context.Context, productID, sellerID int64) error {
	return s.db.Write(func() error {
		product, ok := s.db.Products.Get(productID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if product.SellerID != sellerID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "product does not belong to seller")
		}

		if changed := s.db.Products.Delete(productID); changed == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		s.db.CartEntries.DeleteWhere(func(e *models.CartEntry) bool {
			return e.ProductID == productID
		})
		return nil
	})
}

// enrich recomputes the derived listing fields from the editable ones.
func enrich(p *models.Product) {
	tags := enrichment.GenerateTags(p.Title, p.Description, p.Category)
	p.AITags = enrichment.JoinTags(tags)
	p.SustainabilityScore = enrichment.SustainabilityScore(p.Category, p.Price)
	p.CO2Saved = enrichment.CO2Saved(p.Category, p.Price)
}

func validateListing(input ListingInput) (enums.Category, error) {
	details := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		details["title"] = "is required"
	}
	if strings.TrimSpace(input.Description) == "" {
		details["description"] = "is required"
	}
	if strings.TrimSpace(input.Category) == "" {
		details["category"] = "is required"
	}
	if len(details) > 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "missing required fields").WithDetails(details)
	}

	category, err := enums.ParseCategory(input.Category)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown category")
	}
	if !input.Price.IsPositive() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than 0")
	}
	return category, nil
}
