package enums

import "fmt"

// PickupStatus tracks a doorstep collection request through its lifecycle.
type PickupStatus string

const (
	PickupStatusScheduled PickupStatus = "scheduled"
	PickupStatusInTransit PickupStatus = "in_transit"
	PickupStatusCollected PickupStatus = "collected"
	PickupStatusCancelled PickupStatus = "cancelled"
)

var validPickupStatuses = []PickupStatus{
	PickupStatusScheduled,
	PickupStatusInTransit,
	PickupStatusCollected,
	PickupStatusCancelled,
}

// String implements fmt.Stringer.
func (p PickupStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PickupStatus.
func (p PickupStatus) IsValid() bool {
	for _, candidate := range validPickupStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePickupStatus converts raw input into a PickupStatus.
func ParsePickupStatus(value string) (PickupStatus, error) {
	for _, candidate := range validPickupStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pickup status %q", value)
}
