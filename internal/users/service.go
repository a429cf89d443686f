// Package users exposes seller-facing account data: the public trust profile
// and buyer ratings.
package users

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/relooped/reloop-backend/internal/enrichment"
	"github.com/relooped/reloop-backend/pkg/db/models"
	"github.com/relooped/reloop-backend/pkg/enums"
	pkgerrors "github.com/relooped/reloop-backend/pkg/errors"
	"github.com/relooped/reloop-backend/pkg/store"
)

// SellerProfile is the public trust view of a seller.
type SellerProfile struct {
	UserID            int64             `json:"user_id"`
	Username          string            `json:"username"`
	MemberSince       time.Time         `json:"member_since"`
	IsVerified        bool              `json:"is_verified"`
	TotalSales        int               `json:"total_sales"`
	AverageRating     float64           `json:"average_rating"`
	VerificationScore int               `json:"verification_score"`
	Badge             enums.SellerBadge `json:"badge"`
	BadgeLabel        string            `json:"badge_label"`
	TrustLevel        enums.TrustLevel  `json:"trust_level"`
	CanSellHighValue  bool              `json:"can_sell_high_value"`
	ActiveListings    int               `json:"active_listings"`
}

// Service defines the seller profile operations.
type Service interface {
	SellerProfile(ctx context.Context, sellerID int64) (*SellerProfile, error)
	RecordRating(ctx context.Context, raterID, sellerID int64, rating float64) (*SellerProfile, error)
}

type service struct {
	db *store.Store
}

// NewService builds the users service.
func NewService(db *store.Store) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("store required")
	}
	return &service{db: db}, nil
}

// SellerProfile computes the seller's trust profile from live account data.
func (s *service) SellerProfile(_ context.Context, sellerID int64) (*SellerProfile, error) {
	var profile *SellerProfile
	err := s.db.Read(func() error {
		seller, ok := s.db.Users.Get(sellerID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		profile = s.profileFor(seller)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// RecordRating folds a buyer's rating into the seller's running average and
// refreshes the cached verification score. Sellers cannot rate themselves.
func (s *service) RecordRating(_ context.Context, raterID, sellerID int64, rating float64) (*SellerProfile, error) {
	if rating <= 0 || rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 0 and 5")
	}
	if raterID == sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "cannot rate yourself")
	}

	var profile *SellerProfile
	err := s.db.Write(func() error {
		if _, ok := s.db.Users.Get(raterID); !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		if _, ok := s.db.Users.Get(sellerID); !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}

		now := s.db.Now()
		s.db.Users.Update(sellerID, func(u *models.User) {
			sum := u.AverageRating*float64(u.RatingCount) + rating
			u.RatingCount++
			u.AverageRating = math.Round(sum/float64(u.RatingCount)*100) / 100
			u.VerificationScore = enrichment.VerificationScore(u, now)
			profile = s.profileFor(u)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// profileFor must be called with the store lock held.
func (s *service) profileFor(seller *models.User) *SellerProfile {
	now := s.db.Now()
	score := enrichment.VerificationScore(seller, now)
	badge, label := enrichment.BadgeFor(score)
	listings := len(s.db.Products.List(func(p *models.Product) bool {
		return p.SellerID == seller.ID
	}))
	return &SellerProfile{
		UserID:            seller.ID,
		Username:          seller.Username,
		MemberSince:       seller.CreatedAt,
		IsVerified:        seller.IsVerified,
		TotalSales:        seller.TotalSales,
		AverageRating:     seller.AverageRating,
		VerificationScore: score,
		Badge:             badge,
		BadgeLabel:        label,
		TrustLevel:        enrichment.TrustLevelFor(score),
		CanSellHighValue:  enrichment.CanSellHighValue(seller, now),
		ActiveListings:    listings,
	}
}
