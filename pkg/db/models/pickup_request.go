package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/wastewise/wastewise-backend/pkg/enums"
	"github.com/wastewise/wastewise-backend/pkg/types"
)

// PickupRequest is a confirmed doorstep collection booking produced by
// the scheduling wizard.
type PickupRequest struct {
	ID         uuid.UUID                `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SessionID  uuid.UUID                `gorm:"column:session_id;type:uuid;not null;index:idx_pickup_requests_session" json:"-"`
	TrackingID string                   `gorm:"column:tracking_id;not null;uniqueIndex:uq_pickup_requests_tracking_id" json:"tracking_id"`
	Category   enums.CollectionCategory `gorm:"column:category;not null" json:"category"`
	Bucket     enums.QuantityBucket     `gorm:"column:bucket;not null" json:"bucket"`
	PickupDate time.Time                `gorm:"column:pickup_date;not null" json:"pickup_date"`
	Slot       enums.TimeSlot           `gorm:"column:slot;not null" json:"slot"`
	Contact    types.Contact            `gorm:"column:contact;type:jsonb;serializer:json;not null" json:"contact"`
	Status     enums.PickupStatus       `gorm:"column:status;not null;default:'scheduled'" json:"status"`
	CreatedAt  time.Time                `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time                `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
