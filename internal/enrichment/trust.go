package enrichment

import (
	"math"
	"time"

	"github.com/relooped/reloop-backend/pkg/db/models"
	"github.com/relooped/reloop-backend/pkg/enums"
)

const (
	accountAgeCap  = 20
	salesScoreCap  = 30
	pointsPerSale  = 2
	ratingWeight   = 8
	verifiedBonus  = 10
	maxTrustScore  = 100
	hoursPerWeek   = 24 * 7
	highValueFloor = 60
)

// VerificationScore derives a 0-100 trust metric from account age, completed
// sales, ratings and the verification flag. Each term is clamped before
// summing; the total is clamped to 100.
func VerificationScore(user *models.User, now time.Time) int {
	if user == nil {
		return 0
	}

	score := 0

	// 1 point per full week of account age, max 20.
	weeks := int(now.Sub(user.CreatedAt).Hours() / hoursPerWeek)
	if weeks < 0 {
		weeks = 0
	}
	score += minInt(weeks, accountAgeCap)

	// 2 points per completed sale, max 30.
	score += minInt(user.TotalSales*pointsPerSale, salesScoreCap)

	// 8 points per rating star; average_rating is bounded [0,5] so max 40.
	if user.AverageRating > 0 {
		score += int(math.Floor(user.AverageRating * ratingWeight))
	}

	if user.IsVerified {
		score += verifiedBonus
	}

	return minInt(score, maxTrustScore)
}

// BadgeFor maps a verification score to the badge tier and its display name.
// The highest qualifying tier wins.
func BadgeFor(score int) (enums.SellerBadge, string) {
	switch {
	case score >= 80:
		return enums.SellerBadgeGold, "Trusted Seller"
	case score >= 60:
		return enums.SellerBadgeSilver, "Verified Seller"
	case score >= 40:
		return enums.SellerBadgeBronze, "Active Seller"
	default:
		return enums.SellerBadgeNone, "New Seller"
	}
}

// TrustLevelFor maps a verification score to the coarse trust tier.
func TrustLevelFor(score int) enums.TrustLevel {
	switch {
	case score >= 80:
		return enums.TrustLevelHigh
	case score >= 60:
		return enums.TrustLevelMedium
	case score >= 40:
		return enums.TrustLevelLow
	default:
		return enums.TrustLevelNew
	}
}

// CanSellHighValue reports whether the seller may list high-value items:
// verification score of at least 60, or an explicitly verified account.
func CanSellHighValue(user *models.User, now time.Time) bool {
	if user == nil {
		return false
	}
	return VerificationScore(user, now) >= highValueFloor || user.IsVerified
}

// SellerStats aggregates every trust-derived field for the seller profile.
type SellerStats struct {
	VerificationScore int               `json:"verification_score"`
	Badge             enums.SellerBadge `json:"badge"`
	BadgeLabel        string            `json:"badge_label"`
	TrustLevel        enums.TrustLevel  `json:"trust_level"`
	TotalSales        int               `json:"total_sales"`
	AverageRating     float64           `json:"average_rating"`
	IsVerified        bool              `json:"is_verified"`
	CanSellHighValue  bool              `json:"can_sell_high_value"`
}

// SellerStatsFor computes the full trust profile for a seller.
func SellerStatsFor(user *models.User, now time.Time) SellerStats {
	score := VerificationScore(user, now)
	badge, label := BadgeFor(score)

	stats := SellerStats{
		VerificationScore: score,
		Badge:             badge,
		BadgeLabel:        label,
		TrustLevel:        TrustLevelFor(score),
	}
	if user != nil {
		stats.TotalSales = user.TotalSales
		stats.AverageRating = user.AverageRating
		stats.IsVerified = user.IsVerified
		stats.CanSellHighValue = score >= highValueFloor || user.IsVerified
	}
	return stats
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
