package estimator

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wastewise/wastewise-backend/pkg/enums"
)

// baseRatesPerKg is the market rate in rupees per kilogram.
var baseRatesPerKg = map[enums.MaterialType]decimal.Decimal{
	enums.MaterialTypePlastic: decimal.NewFromInt(7),
	enums.MaterialTypePaper:   decimal.NewFromInt(10),
	enums.MaterialTypeMetal:   decimal.NewFromInt(25),
	enums.MaterialTypeEWaste:  decimal.NewFromInt(30),
	enums.MaterialTypeGlass:   decimal.NewFromInt(4),
}

// defaultBaseRatePerKg prices materials missing from the rate card.
var defaultBaseRatePerKg = decimal.NewFromInt(10)

func baseRate(material enums.MaterialType) decimal.Decimal {
	if rate, ok := baseRatesPerKg[material]; ok {
		return rate
	}
	return defaultBaseRatePerKg
}

// conditionMultipliers adjust a quote for the state of the material.
var conditionMultipliers = map[enums.ItemCondition]decimal.Decimal{
	enums.ItemConditionExcellent: decimal.NewFromFloat(1.3),
	enums.ItemConditionGood:      decimal.NewFromFloat(1.1),
	enums.ItemConditionFair:      decimal.NewFromFloat(1.0),
	enums.ItemConditionPoor:      decimal.NewFromFloat(0.7),
}

// pieceWeightsKg converts a piece count into kilograms per material.
var pieceWeightsKg = map[enums.MaterialType]decimal.Decimal{
	enums.MaterialTypePlastic: decimal.NewFromFloat(0.05),
	enums.MaterialTypePaper:   decimal.NewFromFloat(0.1),
	enums.MaterialTypeMetal:   decimal.NewFromFloat(0.2),
	enums.MaterialTypeEWaste:  decimal.NewFromFloat(0.3),
	enums.MaterialTypeGlass:   decimal.NewFromFloat(0.4),
}

var defaultPieceWeightKg = decimal.NewFromFloat(0.2)

// catalogEntry is the resale range for a recognized high-value device.
type catalogEntry struct {
	Key string
	Min decimal.Decimal
	Max decimal.Decimal
	Avg decimal.Decimal
}

// highValueCatalog lists devices priced per unit rather than per kilogram.
// Lookup is by case-insensitive substring match on the item name.
var highValueCatalog = []catalogEntry{
	{Key: "iphone 15", Min: decimal.NewFromInt(35000), Max: decimal.NewFromInt(55000), Avg: decimal.NewFromInt(45000)},
	{Key: "iphone 14", Min: decimal.NewFromInt(25000), Max: decimal.NewFromInt(40000), Avg: decimal.NewFromInt(32500)},
	{Key: "iphone", Min: decimal.NewFromInt(12000), Max: decimal.NewFromInt(30000), Avg: decimal.NewFromInt(21000)},
	{Key: "macbook pro", Min: decimal.NewFromInt(55000), Max: decimal.NewFromInt(90000), Avg: decimal.NewFromInt(72500)},
	{Key: "macbook", Min: decimal.NewFromInt(40000), Max: decimal.NewFromInt(65000), Avg: decimal.NewFromInt(52500)},
	{Key: "samsung galaxy", Min: decimal.NewFromInt(15000), Max: decimal.NewFromInt(35000), Avg: decimal.NewFromInt(25000)},
	{Key: "laptop", Min: decimal.NewFromInt(15000), Max: decimal.NewFromInt(30000), Avg: decimal.NewFromInt(22500)},
	{Key: "tablet", Min: decimal.NewFromInt(8000), Max: decimal.NewFromInt(20000), Avg: decimal.NewFromInt(14000)},
	{Key: "refrigerator", Min: decimal.NewFromInt(8000), Max: decimal.NewFromInt(15000), Avg: decimal.NewFromInt(11500)},
	{Key: "washing machine", Min: decimal.NewFromInt(5000), Max: decimal.NewFromInt(12000), Avg: decimal.NewFromInt(8500)},
	{Key: "air conditioner", Min: decimal.NewFromInt(7000), Max: decimal.NewFromInt(14000), Avg: decimal.NewFromInt(10500)},
	{Key: "tv", Min: decimal.NewFromInt(10000), Max: decimal.NewFromInt(22000), Avg: decimal.NewFromInt(16000)},
}

// lookupCatalog matches an item name against the high-value catalog. The
// list is ordered most-specific first, so "iphone 15 pro" hits the
// "iphone 15" row before the generic "iphone" row.
func lookupCatalog(itemName string) (catalogEntry, bool) {
	normalized := strings.ToLower(strings.TrimSpace(itemName))
	if normalized == "" {
		return catalogEntry{}, false
	}
	for _, entry := range highValueCatalog {
		if strings.Contains(normalized, entry.Key) {
			return entry, true
		}
	}
	return catalogEntry{}, false
}

// quantityBonus rewards bigger lots with a better rate.
func quantityBonus(quantity decimal.Decimal) decimal.Decimal {
	switch {
	case quantity.GreaterThanOrEqual(decimal.NewFromInt(50)):
		return decimal.NewFromFloat(1.15)
	case quantity.GreaterThanOrEqual(decimal.NewFromInt(20)):
		return decimal.NewFromFloat(1.10)
	case quantity.GreaterThanOrEqual(decimal.NewFromInt(10)):
		return decimal.NewFromFloat(1.05)
	default:
		return decimal.NewFromInt(1)
	}
}

func pieceWeight(material enums.MaterialType) decimal.Decimal {
	if weight, ok := pieceWeightsKg[material]; ok {
		return weight
	}
	return defaultPieceWeightKg
}
