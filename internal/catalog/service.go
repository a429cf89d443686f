// Package catalog joins products with sellers and enrichment outputs for the
// browse, detail and tag-ranking read paths.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/relooped/reloop-backend/pkg/db/models"
	"github.com/relooped/reloop-backend/pkg/enums"
	pkgerrors "github.com/relooped/reloop-backend/pkg/errors"
	"github.com/relooped/reloop-backend/pkg/store"
)

// popularTagLimit caps the ranked tag list.
const popularTagLimit = 20

// Service defines the catalog read operations.
type Service interface {
	ListProducts(ctx context.Context, filters Filters) ([]ProductView, error)
	GetProduct(ctx context.Context, id int64) (*ProductView, error)
	ListSellerProducts(ctx context.Context, sellerID int64) ([]ProductView, error)
	PopularTags(ctx context.Context) ([]string, error)
}

type service struct {
	db *store.Store
}

// NewService builds the catalog service.
func NewService(db *store.Store) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("store required")
	}
	return &service{db: db}, nil
}

func (s *service) ListProducts(_ context.Context, filters Filters) ([]ProductView, error) {
	var views []ProductView
	err := s.db.Read(func() error {
		for _, product := range s.db.Products.List(nil) {
			if !matchesCategory(product, filters.Category) {
				continue
			}
			if !matchesSearch(product, filters.Search) {
				continue
			}
			if filters.MinSustainabilityScore != nil && product.SustainabilityScore < *filters.MinSustainabilityScore {
				continue
			}
			views = append(views, s.joinSeller(product))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(views)
	return views, nil
}

func (s *service) GetProduct(_ context.Context, id int64) (*ProductView, error) {
	var view ProductView
	err := s.db.Read(func() error {
		product, ok := s.db.Products.Get(id)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		view = s.joinSeller(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *service) ListSellerProducts(_ context.Context, sellerID int64) ([]ProductView, error) {
	var views []ProductView
	err := s.db.Read(func() error {
		products := s.db.Products.List(func(p *models.Product) bool {
			return p.SellerID == sellerID
		})
		for _, product := range products {
			views = append(views, s.joinSeller(product))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(views)
	return views, nil
}

func (s *service) PopularTags(_ context.Context) ([]string, error) {
	counts := make(map[string]int)
	var order []string

	err := s.db.Read(func() error {
		for _, product := range s.db.Products.List(nil) {
			for _, tag := range product.TagList() {
				if _, seen := counts[tag]; !seen {
					order = append(order, tag)
				}
				counts[tag]++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Stable sort keeps first-encountered order on frequency ties.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > popularTagLimit {
		order = order[:popularTagLimit]
	}
	return order, nil
}

// joinSeller copies the product and attaches the seller username. Callers get
// a detached copy so mutating a view never touches the store.
func (s *service) joinSeller(product *models.Product) ProductView {
	view := ProductView{Product: *product, SellerUsername: unknownSeller}
	if seller, ok := s.db.Users.Get(product.SellerID); ok {
		view.SellerUsername = seller.Username
	}
	return view
}

func matchesCategory(product *models.Product, filter string) bool {
	if filter == "" || filter == enums.CategoryFilterAll {
		return true
	}
	return product.Category.String() == filter
}

func matchesSearch(product *models.Product, search string) bool {
	if search == "" {
		return true
	}
	term := strings.ToLower(search)
	if strings.Contains(strings.ToLower(product.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(product.Description), term) {
		return true
	}
	for _, tag := range product.TagList() {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func sortNewestFirst(views []ProductView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
}
