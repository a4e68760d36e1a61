package repositories

import (
	"context"

	"art-gallery-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageRepository defines data access for admin/user messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Message, error)
	Save(ctx context.Context, message *models.Message) error
	// ListVisibleTo applies the role-scoped visibility rule: staff see what
	// they authored plus every broadcast and every user-to-admin message;
	// regular users see broadcasts, messages addressed to them, and their own
	// messages to admin.
	ListVisibleTo(ctx context.Context, userID uuid.UUID, staff bool) ([]models.Message, error)
}

type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *GormMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *GormMessageRepository) Save(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Save(message).Error
}

func (r *GormMessageRepository) ListVisibleTo(ctx context.Context, userID uuid.UUID, staff bool) ([]models.Message, error) {
	var messages []models.Message
	query := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Order("created_at DESC")

	if staff {
		query = query.Where(
			"sender_id = ? OR message_type = ? OR message_type = ?",
			userID, models.MessageTypeAdminToAll, models.MessageTypeUserToAdmin,
		)
	} else {
		query = query.Where(
			"(recipient_id = ? AND message_type = ?) OR message_type = ? OR (sender_id = ? AND message_type = ?)",
			userID, models.MessageTypeAdminToUser,
			models.MessageTypeAdminToAll,
			userID, models.MessageTypeUserToAdmin,
		)
	}

	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
