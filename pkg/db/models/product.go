package models

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/relooped/reloop-backend/pkg/enums"
)

// Product represents a second-hand listing. AITags, SustainabilityScore and
// CO2Saved are derived at write time and stay in lockstep with title,
// description, category and price.
type Product struct {
	Meta
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Category            enums.Category  `json:"category"`
	Price               decimal.Decimal `json:"price"`
	SellerID            int64           `json:"seller_id"`
	AITags              string          `json:"ai_tags"`
	SustainabilityScore int             `json:"sustainability_score"`
	CO2Saved            decimal.Decimal `json:"co2_saved"`
}

// TagList splits the stored comma-joined tag string, dropping empty entries.
func (p *Product) TagList() []string {
	if p == nil || p.AITags == "" {
		return nil
	}
	parts := strings.Split(p.AITags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
