package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wastewise/wastewise-backend/pkg/enums"
)

// Estimate records one price quote a session requested. ItemName is set
// for high-value device quotes and empty for per-kilogram material quotes.
type Estimate struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID           `gorm:"column:session_id;type:uuid;not null;index:idx_estimates_session" json:"-"`
	Material  enums.MaterialType  `gorm:"column:material" json:"material"`
	ItemName  string              `gorm:"column:item_name" json:"item_name,omitempty"`
	Quantity  decimal.Decimal     `gorm:"column:quantity;type:numeric(12,2);not null" json:"quantity"`
	Condition enums.ItemCondition `gorm:"column:condition;not null" json:"condition"`
	Point     decimal.Decimal     `gorm:"column:point;type:numeric(12,2);not null" json:"point"`
	Min       decimal.Decimal     `gorm:"column:min;type:numeric(12,2);not null" json:"min"`
	Max       decimal.Decimal     `gorm:"column:max;type:numeric(12,2);not null" json:"max"`
	Insight   string              `gorm:"column:insight" json:"insight,omitempty"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
