package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wastewise/wastewise-backend/pkg/enums"
	"github.com/wastewise/wastewise-backend/pkg/types"
)

// StoreOrder is a placed eco-store order. Items are frozen as a JSON
// snapshot at checkout and the delivery stage is derived from PlacedAt.
type StoreOrder struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SessionID     uuid.UUID           `gorm:"column:session_id;type:uuid;not null;index:idx_store_orders_session" json:"-"`
	PublicID      string              `gorm:"column:public_id;not null;uniqueIndex:uq_store_orders_public_id" json:"public_id"`
	Items         types.OrderItems    `gorm:"column:items;type:jsonb;serializer:json;not null" json:"items"`
	Subtotal      decimal.Decimal     `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	Shipping      decimal.Decimal     `gorm:"column:shipping;type:numeric(12,2);not null" json:"shipping"`
	Tax           decimal.Decimal     `gorm:"column:tax;type:numeric(12,2);not null" json:"tax"`
	Total         decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null" json:"payment_method"`
	Contact       types.Contact       `gorm:"column:contact;type:jsonb;serializer:json" json:"contact"`
	PlacedAt      time.Time           `gorm:"column:placed_at;not null" json:"placed_at"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
