package enums

import "fmt"

// Category represents the closed set of listing categories.
type Category string

const (
	CategoryElectronics    Category = "Electronics"
	CategoryClothing       Category = "Clothing"
	CategoryBooks          Category = "Books"
	CategoryHomeGarden     Category = "Home & Garden"
	CategorySportsOutdoors Category = "Sports & Outdoors"
	CategoryToysGames      Category = "Toys & Games"
	CategoryOther          Category = "Other"
)

// CategoryFilterAll is the sentinel filter value meaning "no category filter".
const CategoryFilterAll = "All"

var validCategories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryBooks,
	CategoryHomeGarden,
	CategorySportsOutdoors,
	CategoryToysGames,
	CategoryOther,
}

// Categories returns the closed category set in canonical order.
func Categories() []Category {
	out := make([]Category, len(validCategories))
	copy(out, validCategories)
	return out
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Category.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory converts raw input into a Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range validCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}
