package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one product line in a session's cart. Lines are keyed by
// product name within a session, so adding the same product twice merges
// into a single line with a higher quantity.
type CartItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID       `gorm:"column:session_id;type:uuid;not null;index:idx_cart_items_session" json:"-"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	ImageURL  string          `gorm:"column:image_url" json:"image_url,omitempty"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
