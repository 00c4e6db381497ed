package rewards

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wastewise/wastewise-backend/pkg/db/models"
)

// Repository isolates rewards persistence from the service logic.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindAccount(ctx context.Context, sessionID uuid.UUID) (*models.RewardAccount, error)
	CreateAccount(ctx context.Context, account *models.RewardAccount) error
	UpdateAccount(ctx context.Context, account *models.RewardAccount) error
	CreateRedemption(ctx context.Context, redemption *models.RewardRedemption) error
	FindRedemptions(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.RewardRedemption, error)
	TrimRedemptions(ctx context.Context, sessionID uuid.UUID, keep int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a rewards repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindAccount(ctx context.Context, sessionID uuid.UUID) (*models.RewardAccount, error) {
	var account models.RewardAccount
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repository) CreateAccount(ctx context.Context, account *models.RewardAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *repository) UpdateAccount(ctx context.Context, account *models.RewardAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *repository) CreateRedemption(ctx context.Context, redemption *models.RewardRedemption) error {
	return r.db.WithContext(ctx).Create(redemption).Error
}

func (r *repository) FindRedemptions(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.RewardRedemption, error) {
	var redemptions []models.RewardRedemption
	query := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&redemptions).Error; err != nil {
		return nil, err
	}
	return redemptions, nil
}

func (r *repository) TrimRedemptions(ctx context.Context, sessionID uuid.UUID, keep int) error {
	if keep <= 0 {
		return nil
	}
	subquery := r.db.WithContext(ctx).
		Model(&models.RewardRedemption{}).
		Select("id").
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(keep)
	return r.db.WithContext(ctx).
		Where("session_id = ? AND id NOT IN (?)", sessionID, subquery).
		Delete(&models.RewardRedemption{}).Error
}
