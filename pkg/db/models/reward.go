package models

import (
	"time"

	"github.com/google/uuid"
)

// RewardAccount tracks a session's green points balance.
type RewardAccount struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"column:session_id;type:uuid;not null;uniqueIndex:uq_reward_accounts_session" json:"-"`
	Points    int       `gorm:"column:points;not null" json:"points"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// RewardRedemption is one voucher exchanged for points.
type RewardRedemption struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SessionID  uuid.UUID `gorm:"column:session_id;type:uuid;not null;index:idx_reward_redemptions_session" json:"-"`
	RewardName string    `gorm:"column:reward_name;not null" json:"reward_name"`
	Cost       int       `gorm:"column:cost;not null" json:"cost"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
