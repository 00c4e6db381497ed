package chat

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wastewise/wastewise-backend/pkg/db/models"
)

// Repository isolates transcript persistence from the service logic.
type Repository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	FindBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.ChatMessage, error)
	TrimHistory(ctx context.Context, sessionID uuid.UUID, keep int) error
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a chat repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, message *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// FindBySession returns the newest messages first.
func (r *repository) FindBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	query := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *repository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.ChatMessage{}).Error
}

func (r *repository) TrimHistory(ctx context.Context, sessionID uuid.UUID, keep int) error {
	if keep <= 0 {
		return nil
	}
	subquery := r.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Select("id").
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(keep)
	return r.db.WithContext(ctx).
		Where("session_id = ? AND id NOT IN (?)", sessionID, subquery).
		Delete(&models.ChatMessage{}).Error
}
