package domain

import (
	"fmt"
	"strings"
)

// Category classifies a product. The set is closed.
type Category string

const (
	CategoryElectronics Category = "ELECTRONICS"
	CategoryFurniture   Category = "FURNITURE"
	CategoryKitchen     Category = "KITCHEN"
	CategoryClothing    Category = "CLOTHING"
	CategoryBooks       Category = "BOOKS"
	CategorySports      Category = "SPORTS"
	CategoryToys        Category = "TOYS"
	CategoryHealth      Category = "HEALTH"
	CategoryBeauty      Category = "BEAUTY"
	CategoryAutomotive  Category = "AUTOMOTIVE"
	CategoryOther       Category = "OTHER"
)

var categories = []Category{
	CategoryElectronics,
	CategoryFurniture,
	CategoryKitchen,
	CategoryClothing,
	CategoryBooks,
	CategorySports,
	CategoryToys,
	CategoryHealth,
	CategoryBeauty,
	CategoryAutomotive,
	CategoryOther,
}

// Categories returns all known category values.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory converts a string to a Category, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

func (c Category) String() string {
	return string(c)
}
