package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderItem is a cart line frozen at checkout time.
type OrderItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// OrderItems is the JSON column holding an order's line snapshot.
type OrderItems []OrderItem

// Value marshals the lines into their JSON column representation.
func (o OrderItems) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("order items: marshal: %w", err)
	}
	return string(raw), nil
}

// Scan decodes a JSON column into the lines.
func (o *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*o = OrderItems{}
		return nil
	}
	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("order items: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, o)
}
