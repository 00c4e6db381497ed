package enums

import "fmt"

// QuantityBucket is the rough size of a pickup load.
type QuantityBucket string

const (
	QuantityBucketSmall  QuantityBucket = "small"
	QuantityBucketMedium QuantityBucket = "medium"
	QuantityBucketLarge  QuantityBucket = "large"
	QuantityBucketBulk   QuantityBucket = "bulk"
)

var validQuantityBuckets = []QuantityBucket{
	QuantityBucketSmall,
	QuantityBucketMedium,
	QuantityBucketLarge,
	QuantityBucketBulk,
}

// String implements fmt.Stringer.
func (q QuantityBucket) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuantityBucket.
func (q QuantityBucket) IsValid() bool {
	for _, candidate := range validQuantityBuckets {
		if candidate == q {
			return true
		}
	}
	return false
}

// Label returns the customer-facing size description.
func (q QuantityBucket) Label() string {
	switch q {
	case QuantityBucketSmall:
		return "Small (1-2 bags)"
	case QuantityBucketMedium:
		return "Medium (3-5 bags)"
	case QuantityBucketLarge:
		return "Large (6+ bags)"
	case QuantityBucketBulk:
		return "Bulk Collection"
	default:
		return string(q)
	}
}

// ParseQuantityBucket converts raw input into a QuantityBucket.
func ParseQuantityBucket(value string) (QuantityBucket, error) {
	for _, candidate := range validQuantityBuckets {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quantity bucket %q", value)
}
