package enums

import "fmt"

// EstimateUnit is how the seller measured the material quantity.
type EstimateUnit string

const (
	EstimateUnitKilograms EstimateUnit = "kg"
	EstimateUnitPieces    EstimateUnit = "pieces"
)

var validEstimateUnits = []EstimateUnit{
	EstimateUnitKilograms,
	EstimateUnitPieces,
}

// String implements fmt.Stringer.
func (u EstimateUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known EstimateUnit.
func (u EstimateUnit) IsValid() bool {
	for _, candidate := range validEstimateUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseEstimateUnit converts raw input into an EstimateUnit.
func ParseEstimateUnit(value string) (EstimateUnit, error) {
	for _, candidate := range validEstimateUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid estimate unit %q", value)
}
