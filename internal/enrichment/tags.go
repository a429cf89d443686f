// Package enrichment derives listing metadata from entity data: descriptive
// tags, sustainability scoring and seller trust scoring. Everything here is a
// pure function — identical inputs always produce identical outputs — so
// products can be enriched once at write time and never drift.
package enrichment

import (
	"regexp"
	"strings"

	"github.com/relooped/reloop-backend/pkg/enums"
)

// maxTags caps the tag list per listing.
const maxTags = 10

type categoryVocabulary struct {
	keywords      []string
	subcategories []string
}

var vocabularyByCategory = map[enums.Category]categoryVocabulary{
	enums.CategoryElectronics: {
		keywords:      []string{"phone", "laptop", "computer", "tablet", "camera", "headphones", "speaker", "tv", "monitor", "gaming", "console", "iphone", "samsung", "apple", "sony", "nintendo", "xbox", "playstation"},
		subcategories: []string{"Smartphones", "Computers", "Gaming", "Audio", "Cameras", "TVs & Monitors", "Accessories"},
	},
	enums.CategoryClothing: {
		keywords:      []string{"shirt", "pants", "dress", "shoes", "jacket", "jeans", "sneakers", "boots", "coat", "sweater", "hoodie", "nike", "adidas", "zara", "h&m", "vintage"},
		subcategories: []string{"Tops", "Bottoms", "Dresses", "Shoes", "Outerwear", "Activewear", "Vintage"},
	},
	enums.CategoryBooks: {
		keywords:      []string{"novel", "textbook", "fiction", "non-fiction", "cookbook", "biography", "history", "science", "romance", "mystery", "fantasy", "children"},
		subcategories: []string{"Fiction", "Non-Fiction", "Textbooks", "Children's Books", "Cookbooks", "Self-Help"},
	},
	enums.CategoryHomeGarden: {
		keywords:      []string{"furniture", "chair", "table", "lamp", "decor", "plant", "garden", "kitchen", "bedroom", "living room", "tools", "appliance"},
		subcategories: []string{"Furniture", "Decor", "Kitchen", "Garden Tools", "Appliances", "Lighting"},
	},
	enums.CategorySportsOutdoors: {
		keywords:      []string{"bike", "bicycle", "fitness", "gym", "camping", "hiking", "sports", "exercise", "outdoor", "running", "yoga", "weights"},
		subcategories: []string{"Fitness", "Cycling", "Outdoor Gear", "Sports Equipment", "Exercise"},
	},
	enums.CategoryToysGames: {
		keywords:      []string{"toy", "game", "puzzle", "board game", "lego", "doll", "action figure", "educational", "children", "kids", "baby"},
		subcategories: []string{"Board Games", "Educational Toys", "Action Figures", "Puzzles", "Baby Toys", "Building Sets"},
	},
}

// knownBrands is scanned regardless of category.
var knownBrands = []string{
	// electronics
	"apple", "samsung", "sony", "lg", "microsoft", "nintendo", "xbox", "playstation",
	// clothing
	"nike", "adidas", "zara", "h&m", "uniqlo", "gap", "levi", "calvin klein",
	// general
	"ikea", "target", "walmart", "amazon",
}

type conditionBucket struct {
	label   string
	phrases []string
}

// conditionBuckets are scanned in order; several buckets may match at once.
var conditionBuckets = []conditionBucket{
	{label: "excellent", phrases: []string{"new", "mint", "perfect", "excellent", "pristine"}},
	{label: "good", phrases: []string{"good", "great", "nice", "well-maintained", "barely used"}},
	{label: "fair", phrases: []string{"used", "worn", "some wear", "fair", "functional"}},
	{label: "poor", phrases: []string{"damaged", "broken", "repair", "parts", "as-is"}},
}

var knownColors = []string{"black", "white", "red", "blue", "green", "yellow", "pink", "purple", "orange", "brown", "gray", "grey"}

var clothingSizePattern = regexp.MustCompile(`(?i)\b(xs|s|m|l|xl|xxl|\d+)\b`)

// GenerateTags derives descriptive tags from a listing's title, description
// and category. Results are deterministic, deduplicated, ordered category
// first then discovery order, and capped at 10 entries.
func GenerateTags(title, description string, category enums.Category) []string {
	text := strings.ToLower(title + " " + description)

	tags := newTagSet()
	tags.add(category.String())

	if vocab, ok := vocabularyByCategory[category]; ok {
		for _, keyword := range vocab.keywords {
			if strings.Contains(text, keyword) {
				tags.add(keyword)
			}
		}
		for _, subcategory := range vocab.subcategories {
			if anyWordContained(text, subcategory) {
				tags.add(subcategory)
			}
		}
	}

	for _, brand := range knownBrands {
		if strings.Contains(text, brand) {
			tags.add(capitalize(brand))
		}
	}

	for _, bucket := range conditionBuckets {
		for _, phrase := range bucket.phrases {
			if strings.Contains(text, phrase) {
				tags.add("Condition: " + bucket.label)
				break
			}
		}
	}

	if category == enums.CategoryClothing {
		for _, size := range clothingSizePattern.FindAllString(text, -1) {
			tags.add("Size: " + strings.ToUpper(size))
		}
	}

	for _, color := range knownColors {
		if strings.Contains(text, color) {
			tags.add(capitalize(color))
		}
	}

	return tags.slice(maxTags)
}

// JoinTags renders the tag list in the comma-joined form stored on a product.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// anyWordContained reports whether any space-split word of the phrase appears
// as a substring of text.
func anyWordContained(text, phrase string) bool {
	for _, word := range strings.Split(strings.ToLower(phrase), " ") {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

// tagSet preserves first-insertion order while deduplicating.
type tagSet struct {
	seen  map[string]struct{}
	order []string
}

func newTagSet() *tagSet {
	return &tagSet{seen: make(map[string]struct{})}
}

func (s *tagSet) add(tag string) {
	if _, ok := s.seen[tag]; ok {
		return
	}
	s.seen[tag] = struct{}{}
	s.order = append(s.order, tag)
}

func (s *tagSet) slice(limit int) []string {
	if len(s.order) <= limit {
		return s.order
	}
	return s.order[:limit]
}
