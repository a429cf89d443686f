package enrichment

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/relooped/reloop-backend/pkg/enums"
)

func TestSustainabilityScoreByCategory(t *testing.T) {
	tests := []struct {
		name     string
		category enums.Category
		price    string
		want     int
	}{
		{name: "electronics at 100 clamps to max", category: enums.CategoryElectronics, price: "100", want: 100},
		{name: "books at 10", category: enums.CategoryBooks, price: "10", want: 73},
		{name: "free other item keeps base plus weight", category: enums.CategoryOther, price: "0", want: 70},
		{name: "clothing mid price", category: enums.CategoryClothing, price: "20", want: 88},
		{name: "price bonus caps at 30", category: enums.CategoryBooks, price: "10000", want: 98},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SustainabilityScore(tt.category, decimal.RequireFromString(tt.price))
			if got != tt.want {
				t.Fatalf("score(%s, %s) = %d, want %d", tt.category, tt.price, got, tt.want)
			}
		})
	}
}

func TestSustainabilityScoreBounds(t *testing.T) {
	prices := []string{"0", "0.01", "1", "9.99", "42", "59.49", "100", "12345.67"}
	for _, category := range enums.Categories() {
		for _, price := range prices {
			score := SustainabilityScore(category, decimal.RequireFromString(price))
			if score < 60 || score > 100 {
				t.Fatalf("score(%s, %s) = %d out of [60,100]", category, price, score)
			}
		}
	}
}

func TestCO2SavedExamples(t *testing.T) {
	tests := []struct {
		name     string
		category enums.Category
		price    string
		want     string
	}{
		{name: "books multiplier", category: enums.CategoryBooks, price: "10", want: "8"},
		{name: "electronics multiplier", category: enums.CategoryElectronics, price: "100", want: "250"},
		{name: "rounds to two decimals", category: enums.CategoryClothing, price: "9.99", want: "17.98"},
		{name: "zero price", category: enums.CategorySportsOutdoors, price: "0", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CO2Saved(tt.category, decimal.RequireFromString(tt.price))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("co2(%s, %s) = %s, want %s", tt.category, tt.price, got, tt.want)
			}
		})
	}
}

func TestCO2SavedNonNegative(t *testing.T) {
	for _, category := range enums.Categories() {
		for _, price := range []string{"0", "0.01", "3.50", "999.99"} {
			got := CO2Saved(category, decimal.RequireFromString(price))
			if got.IsNegative() {
				t.Fatalf("co2(%s, %s) = %s is negative", category, price, got)
			}
			if got.Exponent() < -2 {
				t.Fatalf("co2(%s, %s) = %s has more than 2 decimals", category, price, got)
			}
		}
	}
}
