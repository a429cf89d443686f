package enrichment

import (
	"github.com/shopspring/decimal"

	"github.com/relooped/reloop-backend/pkg/enums"
)

// co2MultiplierByCategory estimates kg of CO2 avoided per currency unit spent
// second-hand, reflecting each category's manufacturing footprint.
var co2MultiplierByCategory = map[enums.Category]decimal.Decimal{
	enums.CategoryElectronics:    decimal.RequireFromString("2.5"),
	enums.CategoryClothing:       decimal.RequireFromString("1.8"),
	enums.CategoryBooks:          decimal.RequireFromString("0.8"),
	enums.CategoryHomeGarden:     decimal.RequireFromString("1.2"),
	enums.CategorySportsOutdoors: decimal.RequireFromString("1.5"),
	enums.CategoryToysGames:      decimal.RequireFromString("1.3"),
	enums.CategoryOther:          decimal.RequireFromString("1.0"),
}

var (
	baseScore       = decimal.NewFromInt(60)
	priceBonusRate  = decimal.RequireFromString("0.5")
	priceBonusCap   = decimal.NewFromInt(30)
	multiplierScale = decimal.NewFromInt(10)
	maxScore        = decimal.NewFromInt(100)
	defaultCO2Mult  = decimal.RequireFromString("1.0")
)

func multiplierFor(category enums.Category) decimal.Decimal {
	if mult, ok := co2MultiplierByCategory[category]; ok {
		return mult
	}
	return defaultCO2Mult
}

// SustainabilityScore estimates the environmental benefit of a second-hand
// purchase on a 0-100 scale: a base of 60 for any second-hand item, plus a
// category weight, plus a price bonus capped at 30, clamped to 100.
func SustainabilityScore(category enums.Category, price decimal.Decimal) int {
	priceBonus := decimal.Min(price.Mul(priceBonusRate), priceBonusCap)
	score := baseScore.
		Add(multiplierFor(category).Mul(multiplierScale)).
		Add(priceBonus).
		Round(0)
	return int(decimal.Min(score, maxScore).IntPart())
}

// CO2Saved estimates the kilograms of CO2 emissions avoided by the purchase,
// rounded to 2 decimal places.
func CO2Saved(category enums.Category, price decimal.Decimal) decimal.Decimal {
	return price.Mul(multiplierFor(category)).Round(2)
}
