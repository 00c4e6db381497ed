package enums

import "fmt"

// OrderStatus is the delivery stage of a store order. For demo orders the
// stage is derived from the order's age rather than carrier events.
type OrderStatus string

const (
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// Label returns the customer-facing description of the stage.
func (o OrderStatus) Label() string {
	switch o {
	case OrderStatusProcessing:
		return "Processing"
	case OrderStatusShipped:
		return "Shipped"
	case OrderStatusOutForDelivery:
		return "Out for Delivery"
	case OrderStatusDelivered:
		return "Delivered"
	default:
		return string(o)
	}
}

// OrderStatusForAge maps how many whole days have passed since checkout to
// a delivery stage.
func OrderStatusForAge(daysElapsed int) OrderStatus {
	switch {
	case daysElapsed <= 0:
		return OrderStatusProcessing
	case daysElapsed == 1:
		return OrderStatusShipped
	case daysElapsed == 2:
		return OrderStatusOutForDelivery
	default:
		return OrderStatusDelivered
	}
}
