package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wastewise/wastewise-backend/pkg/db/models"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
)

type stubCartRepo struct {
	lines map[string]*models.CartItem
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{lines: map[string]*models.CartItem{}}
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCartRepo) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	for _, line := range s.lines {
		items = append(items, *line)
	}
	return items, nil
}

func (s *stubCartRepo) FindLine(ctx context.Context, sessionID uuid.UUID, name string) (*models.CartItem, error) {
	line, ok := s.lines[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *line
	return &copied, nil
}

func (s *stubCartRepo) Create(ctx context.Context, item *models.CartItem) error {
	s.lines[item.Name] = item
	return nil
}

func (s *stubCartRepo) Update(ctx context.Context, item *models.CartItem) error {
	s.lines[item.Name] = item
	return nil
}

func (s *stubCartRepo) DeleteLine(ctx context.Context, sessionID uuid.UUID, name string) error {
	delete(s.lines, name)
	return nil
}

func (s *stubCartRepo) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	s.lines = map[string]*models.CartItem{}
	return nil
}

func TestParsePrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"₹1,299", "1299"},
		{"1299.50", "1299.5"},
		{"Rs. 450", "450"},
		{"  ₹99  ", "99"},
		{"free", "0"},
		{"", "0"},
		{"-20", "0"},
	}

	for _, tc := range cases {
		got := ParsePrice(tc.raw)
		want, _ := decimal.NewFromString(tc.want)
		if !got.Equal(want) {
			t.Fatalf("ParsePrice(%q) = %s, want %s", tc.raw, got, want)
		}
	}
}

func TestComputeTotalsFlatShippingBelowThreshold(t *testing.T) {
	t.Parallel()

	items := []models.CartItem{
		{Name: "Bamboo Toothbrush", UnitPrice: decimal.NewFromInt(120), Quantity: 2},
	}
	totals := ComputeTotals(items)

	if !totals.Subtotal.Equal(decimal.NewFromInt(240)) {
		t.Fatalf("subtotal = %s, want 240", totals.Subtotal)
	}
	if !totals.Shipping.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("shipping = %s, want 50", totals.Shipping)
	}
	if !totals.Tax.Equal(decimal.NewFromFloat(43.2)) {
		t.Fatalf("tax = %s, want 43.2", totals.Tax)
	}
	if !totals.Total.Equal(decimal.NewFromFloat(333.2)) {
		t.Fatalf("total = %s, want 333.2", totals.Total)
	}
}

func TestComputeTotalsFreeShippingAtThreshold(t *testing.T) {
	t.Parallel()

	items := []models.CartItem{
		{Name: "Compost Bin", UnitPrice: decimal.NewFromInt(500), Quantity: 1},
	}
	totals := ComputeTotals(items)

	if !totals.Shipping.IsZero() {
		t.Fatalf("shipping = %s, want 0", totals.Shipping)
	}
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	t.Parallel()

	totals := ComputeTotals(nil)
	if !totals.Subtotal.IsZero() || !totals.Shipping.IsZero() || !totals.Total.IsZero() {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestServiceAddItemMergesByName(t *testing.T) {
	t.Parallel()

	repo := newStubCartRepo()
	svc := newTestService(t, repo)
	sessionID := uuid.New()

	if _, err := svc.AddItem(context.Background(), AddItemInput{
		SessionID: sessionID,
		Name:      "Jute Bag",
		RawPrice:  "₹250",
		Quantity:  1,
	}); err != nil {
		t.Fatalf("first add: %v", err)
	}

	snapshot, err := svc.AddItem(context.Background(), AddItemInput{
		SessionID: sessionID,
		Name:      "Jute Bag",
		RawPrice:  "₹250",
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(snapshot.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(snapshot.Items))
	}
	if snapshot.Items[0].Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", snapshot.Items[0].Quantity)
	}
	if snapshot.Count != 3 {
		t.Fatalf("count = %d, want 3", snapshot.Count)
	}
}

func TestServiceAddItemRequiresName(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubCartRepo())

	_, err := svc.AddItem(context.Background(), AddItemInput{SessionID: uuid.New(), Name: "  "})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServiceUpdateQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()

	repo := newStubCartRepo()
	svc := newTestService(t, repo)
	sessionID := uuid.New()

	if _, err := svc.AddItem(context.Background(), AddItemInput{
		SessionID: sessionID,
		Name:      "Solar Lamp",
		RawPrice:  "999",
		Quantity:  1,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	snapshot, err := svc.UpdateQuantity(context.Background(), sessionID, "Solar Lamp", 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(snapshot.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(snapshot.Items))
	}
}

func TestServiceUpdateQuantityUnknownLine(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubCartRepo())

	_, err := svc.UpdateQuantity(context.Background(), uuid.New(), "Ghost Item", 2)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServiceClampQuantity(t *testing.T) {
	t.Parallel()

	repo := newStubCartRepo()
	svc := newTestService(t, repo)
	sessionID := uuid.New()

	snapshot, err := svc.AddItem(context.Background(), AddItemInput{
		SessionID: sessionID,
		Name:      "Seed Kit",
		RawPrice:  "150",
		Quantity:  500,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if snapshot.Items[0].Quantity != maxLineQuantity {
		t.Fatalf("quantity = %d, want %d", snapshot.Items[0].Quantity, maxLineQuantity)
	}
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}
