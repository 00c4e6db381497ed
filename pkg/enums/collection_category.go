package enums

import "fmt"

// CollectionCategory is the kind of waste a doorstep pickup collects.
type CollectionCategory string

const (
	CollectionCategoryEWaste    CollectionCategory = "ewaste"
	CollectionCategoryHousehold CollectionCategory = "household"
	CollectionCategoryOrganic   CollectionCategory = "organic"
	CollectionCategoryPlastics  CollectionCategory = "plastics"
)

var validCollectionCategories = []CollectionCategory{
	CollectionCategoryEWaste,
	CollectionCategoryHousehold,
	CollectionCategoryOrganic,
	CollectionCategoryPlastics,
}

// String implements fmt.Stringer.
func (c CollectionCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CollectionCategory.
func (c CollectionCategory) IsValid() bool {
	for _, candidate := range validCollectionCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// Label returns the customer-facing name of the category.
func (c CollectionCategory) Label() string {
	switch c {
	case CollectionCategoryEWaste:
		return "E-Waste"
	case CollectionCategoryHousehold:
		return "Household Waste"
	case CollectionCategoryOrganic:
		return "Organic Waste"
	case CollectionCategoryPlastics:
		return "Plastics & Glass"
	default:
		return string(c)
	}
}

// ParseCollectionCategory converts raw input into a CollectionCategory.
func ParseCollectionCategory(value string) (CollectionCategory, error) {
	for _, candidate := range validCollectionCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid collection category %q", value)
}
