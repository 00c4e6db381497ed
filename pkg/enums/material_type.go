package enums

import "fmt"

// MaterialType is a recyclable material the price estimator knows rates for.
type MaterialType string

const (
	MaterialTypePlastic MaterialType = "plastic"
	MaterialTypePaper   MaterialType = "paper"
	MaterialTypeMetal   MaterialType = "metal"
	MaterialTypeEWaste  MaterialType = "ewaste"
	MaterialTypeGlass   MaterialType = "glass"
)

var validMaterialTypes = []MaterialType{
	MaterialTypePlastic,
	MaterialTypePaper,
	MaterialTypeMetal,
	MaterialTypeEWaste,
	MaterialTypeGlass,
}

// String implements fmt.Stringer.
func (m MaterialType) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MaterialType.
func (m MaterialType) IsValid() bool {
	for _, candidate := range validMaterialTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMaterialType converts raw input into a MaterialType.
func ParseMaterialType(value string) (MaterialType, error) {
	for _, candidate := range validMaterialTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid material type %q", value)
}
