package cart

import (
	"github.com/shopspring/decimal"

	"github.com/wastewise/wastewise-backend/pkg/db/models"
)

var (
	freeShippingThreshold = decimal.NewFromInt(500)
	flatShippingFee       = decimal.NewFromInt(50)
	taxRate               = decimal.NewFromFloat(0.18)
)

// Totals is the money breakdown for a cart or order.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives the money breakdown from cart lines. Orders above
// the free shipping threshold ship free, everything else pays a flat fee.
// Tax is applied to the subtotal only.
func ComputeTotals(items []models.CartItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	shipping := decimal.Zero
	if len(items) > 0 && subtotal.LessThan(freeShippingThreshold) {
		shipping = flatShippingFee
	}

	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(shipping).Add(tax)

	return Totals{
		Subtotal: subtotal.Round(2),
		Shipping: shipping,
		Tax:      tax,
		Total:    total.Round(2),
	}
}
