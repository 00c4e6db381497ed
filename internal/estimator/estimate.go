package estimator

import (
	"github.com/shopspring/decimal"

	"github.com/wastewise/wastewise-backend/pkg/enums"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
)

var (
	bandLow  = decimal.NewFromFloat(0.9)
	bandHigh = decimal.NewFromFloat(1.1)
)

// Request is one quote computation input. ItemName switches the quote to
// the high-value device catalog; otherwise Material and Unit drive a
// per-kilogram quote.
type Request struct {
	Material  enums.MaterialType
	ItemName  string
	Quantity  decimal.Decimal
	Unit      enums.EstimateUnit
	Condition enums.ItemCondition
}

// Result is the computed price band in whole rupees.
type Result struct {
	Point     decimal.Decimal `json:"point"`
	Min       decimal.Decimal `json:"min"`
	Max       decimal.Decimal `json:"max"`
	HighValue bool            `json:"high_value"`
}

// Estimate computes a quote without touching storage or the network.
func Estimate(req Request) (Result, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	condition := req.Condition
	if condition == "" {
		condition = enums.ItemConditionFair
	}
	if !condition.IsValid() {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown item condition")
	}

	if entry, ok := lookupCatalog(req.ItemName); ok {
		return highValueEstimate(entry, req.Quantity, condition), nil
	}

	if req.Material == "" {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "material type is required")
	}
	unit := req.Unit
	if unit == "" {
		unit = enums.EstimateUnitKilograms
	}
	if !unit.IsValid() {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown estimate unit")
	}

	return materialEstimate(req.Material, req.Quantity, unit, condition), nil
}

func materialEstimate(material enums.MaterialType, quantity decimal.Decimal, unit enums.EstimateUnit, condition enums.ItemCondition) Result {
	kilograms := quantity
	if unit == enums.EstimateUnitPieces {
		kilograms = quantity.Mul(pieceWeight(material))
	}

	value := baseRate(material).
		Mul(kilograms).
		Mul(conditionMultipliers[condition]).
		Mul(quantityBonus(kilograms))

	return Result{
		Point: value.Round(0),
		Min:   value.Mul(bandLow).Round(0),
		Max:   value.Mul(bandHigh).Round(0),
	}
}

func highValueEstimate(entry catalogEntry, quantity decimal.Decimal, condition enums.ItemCondition) Result {
	multiplier := conditionMultipliers[condition]
	return Result{
		Point:     entry.Avg.Mul(quantity).Mul(multiplier).Round(0),
		Min:       entry.Min.Mul(quantity).Mul(multiplier).Mul(bandLow).Round(0),
		Max:       entry.Max.Mul(quantity).Mul(multiplier).Mul(bandHigh).Round(0),
		HighValue: true,
	}
}
