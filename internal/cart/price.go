package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice extracts a numeric amount from a display price such as
// "₹1,299" or "1299.50". Currency symbols, commas and whitespace are
// stripped. Values that still fail to parse become zero so a malformed
// catalog entry never blocks an add.
func ParsePrice(raw string) decimal.Decimal {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "₹", "")
	cleaned = strings.ReplaceAll(cleaned, "Rs.", "")
	cleaned = strings.ReplaceAll(cleaned, "Rs", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	if value.IsNegative() {
		return decimal.Zero
	}
	return value
}
