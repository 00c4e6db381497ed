package enums

import "fmt"

// TimeSlot is the window of day a pickup crew visits.
type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotEvening   TimeSlot = "evening"
)

var validTimeSlots = []TimeSlot{
	TimeSlotMorning,
	TimeSlotAfternoon,
	TimeSlotEvening,
}

// String implements fmt.Stringer.
func (t TimeSlot) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TimeSlot.
func (t TimeSlot) IsValid() bool {
	for _, candidate := range validTimeSlots {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTimeSlot converts raw input into a TimeSlot.
func ParseTimeSlot(value string) (TimeSlot, error) {
	for _, candidate := range validTimeSlots {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid time slot %q", value)
}

// Label returns the customer-facing description of the window.
func (t TimeSlot) Label() string {
	switch t {
	case TimeSlotMorning:
		return "Morning (8 AM - 12 PM)"
	case TimeSlotAfternoon:
		return "Afternoon (12 PM - 4 PM)"
	case TimeSlotEvening:
		return "Evening (4 PM - 8 PM)"
	default:
		return string(t)
	}
}
