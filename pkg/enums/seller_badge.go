package enums

import "fmt"

// SellerBadge represents the verification badge tiers.
type SellerBadge string

const (
	SellerBadgeGold   SellerBadge = "gold"
	SellerBadgeSilver SellerBadge = "silver"
	SellerBadgeBronze SellerBadge = "bronze"
	SellerBadgeNone   SellerBadge = "none"
)

var validSellerBadges = []SellerBadge{
	SellerBadgeGold,
	SellerBadgeSilver,
	SellerBadgeBronze,
	SellerBadgeNone,
}

// String implements fmt.Stringer.
func (b SellerBadge) String() string {
	return string(b)
}

// IsValid reports whether the value is a known SellerBadge.
func (b SellerBadge) IsValid() bool {
	for _, candidate := range validSellerBadges {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseSellerBadge converts raw input into a SellerBadge.
func ParseSellerBadge(value string) (SellerBadge, error) {
	for _, candidate := range validSellerBadges {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid seller badge %q", value)
}

// TrustLevel buckets the verification score for buyer-facing copy.
type TrustLevel string

const (
	TrustLevelHigh   TrustLevel = "high"
	TrustLevelMedium TrustLevel = "medium"
	TrustLevelLow    TrustLevel = "low"
	TrustLevelNew    TrustLevel = "new"
)

var validTrustLevels = []TrustLevel{
	TrustLevelHigh,
	TrustLevelMedium,
	TrustLevelLow,
	TrustLevelNew,
}

// String implements fmt.Stringer.
func (l TrustLevel) String() string {
	return string(l)
}

// IsValid reports whether the value is a known TrustLevel.
func (l TrustLevel) IsValid() bool {
	for _, candidate := range validTrustLevels {
		if candidate == l {
			return true
		}
	}
	return false
}
