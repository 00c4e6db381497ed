package estimator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wastewise/wastewise-backend/pkg/enums"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
)

func TestEstimateMetalWithQuantityBonus(t *testing.T) {
	t.Parallel()

	result, err := Estimate(Request{
		Material:  enums.MaterialTypeMetal,
		Quantity:  decimal.NewFromInt(10),
		Unit:      enums.EstimateUnitKilograms,
		Condition: enums.ItemConditionGood,
	})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}

	// 25 * 10 * 1.1 * 1.05 = 288.75
	if !result.Point.Equal(decimal.NewFromInt(289)) {
		t.Fatalf("point = %s, want 289", result.Point)
	}
	if !result.Min.Equal(decimal.NewFromInt(260)) {
		t.Fatalf("min = %s, want 260", result.Min)
	}
	if !result.Max.Equal(decimal.NewFromInt(318)) {
		t.Fatalf("max = %s, want 318", result.Max)
	}
	if result.HighValue {
		t.Fatal("expected per-kg quote")
	}
}

func TestEstimatePiecesConvertToKilograms(t *testing.T) {
	t.Parallel()

	result, err := Estimate(Request{
		Material:  enums.MaterialTypePlastic,
		Quantity:  decimal.NewFromInt(100),
		Unit:      enums.EstimateUnitPieces,
		Condition: enums.ItemConditionFair,
	})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}

	// 100 pieces * 0.05 kg = 5 kg; bonus tiers see 5 kg, not 100 pieces.
	// 7 * 5 * 1.0 * 1.0 = 35
	if !result.Point.Equal(decimal.NewFromInt(35)) {
		t.Fatalf("point = %s, want 35", result.Point)
	}
}

func TestEstimateBonusKeysOffKilogramEquivalent(t *testing.T) {
	t.Parallel()

	// 300 pieces * 0.05 kg = 15 kg crosses the first bonus tier.
	result, err := Estimate(Request{
		Material:  enums.MaterialTypePlastic,
		Quantity:  decimal.NewFromInt(300),
		Unit:      enums.EstimateUnitPieces,
		Condition: enums.ItemConditionFair,
	})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}

	// 7 * 15 * 1.0 * 1.05 = 110.25
	if !result.Point.Equal(decimal.NewFromInt(110)) {
		t.Fatalf("point = %s, want 110", result.Point)
	}
}

func TestEstimateHighValueDevice(t *testing.T) {
	t.Parallel()

	result, err := Estimate(Request{
		ItemName:  "Apple iPhone 15 Pro",
		Quantity:  decimal.NewFromInt(1),
		Condition: enums.ItemConditionGood,
	})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}

	if !result.HighValue {
		t.Fatal("expected high-value quote")
	}
	// point = 45000 * 1 * 1.1 = 49500
	if !result.Point.Equal(decimal.NewFromInt(49500)) {
		t.Fatalf("point = %s, want 49500", result.Point)
	}
	// min = 35000 * 1 * 1.1 * 0.9 = 34650
	if !result.Min.Equal(decimal.NewFromInt(34650)) {
		t.Fatalf("min = %s, want 34650", result.Min)
	}
	// max = 55000 * 1 * 1.1 * 1.1 = 66550
	if !result.Max.Equal(decimal.NewFromInt(66550)) {
		t.Fatalf("max = %s, want 66550", result.Max)
	}
}

func TestEstimateCatalogPrefersSpecificMatch(t *testing.T) {
	t.Parallel()

	entry, ok := lookupCatalog("old iphone 15 with cracked screen")
	if !ok || entry.Key != "iphone 15" {
		t.Fatalf("expected iphone 15 entry, got %+v ok=%v", entry, ok)
	}

	entry, ok = lookupCatalog("iphone 8")
	if !ok || entry.Key != "iphone" {
		t.Fatalf("expected generic iphone entry, got %+v ok=%v", entry, ok)
	}
}

func TestEstimateDefaultsConditionToFair(t *testing.T) {
	t.Parallel()

	result, err := Estimate(Request{
		Material: enums.MaterialTypePaper,
		Quantity: decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	// 10 * 5 * 1.0 * 1.0 = 50
	if !result.Point.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("point = %s, want 50", result.Point)
	}
}

func TestEstimateUnlistedMaterialUsesDefaultRate(t *testing.T) {
	t.Parallel()

	result, err := Estimate(Request{
		Material: enums.MaterialType("wood"),
		Quantity: decimal.NewFromInt(4),
	})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	// Off-card materials price at the 10/kg default: 10 * 4 * 1.0 * 1.0 = 40.
	if !result.Point.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("point = %s, want 40", result.Point)
	}
	if result.HighValue {
		t.Fatal("expected per-kg quote")
	}
}

func TestEstimateRejectsBadInput(t *testing.T) {
	t.Parallel()

	cases := []Request{
		{Material: enums.MaterialTypeMetal, Quantity: decimal.Zero},
		{Quantity: decimal.NewFromInt(1)},
		{Material: enums.MaterialTypeMetal, Quantity: decimal.NewFromInt(1), Condition: enums.ItemCondition("mint")},
		{Material: enums.MaterialTypeMetal, Quantity: decimal.NewFromInt(1), Unit: enums.EstimateUnit("tons")},
	}

	for i, req := range cases {
		_, err := Estimate(req)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
	}
}

func TestQuantityBonusTiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		quantity int64
		want     string
	}{
		{5, "1"},
		{10, "1.05"},
		{20, "1.1"},
		{50, "1.15"},
		{120, "1.15"},
	}

	for _, tc := range cases {
		want, _ := decimal.NewFromString(tc.want)
		got := quantityBonus(decimal.NewFromInt(tc.quantity))
		if !got.Equal(want) {
			t.Fatalf("bonus(%d) = %s, want %s", tc.quantity, got, want)
		}
	}
}
