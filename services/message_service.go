package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"art-gallery-service/models"
	repositories "art-gallery-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MessageService manages the admin/user messaging channel.
type MessageService struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
	logger      *zap.Logger
}

func NewMessageService(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, logger *zap.Logger) *MessageService {
	return &MessageService{messageRepo: messageRepo, userRepo: userRepo, logger: logger}
}

// ListMessages returns the messages visible to the caller under the
// role-scoped visibility rule.
func (s *MessageService) ListMessages(ctx context.Context, userID uuid.UUID, staff bool) ([]models.Message, *ServiceError) {
	messages, err := s.messageRepo.ListVisibleTo(ctx, userID, staff)
	if err != nil {
		s.logger.Error("Failed to list messages", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch messages"}
	}
	for i := range messages {
		decorateMessage(&messages[i])
	}
	return messages, nil
}

// SendPublicMessage broadcasts to all users. Staff only.
func (s *MessageService) SendPublicMessage(ctx context.Context, senderID uuid.UUID, staff bool, subject, content string) (*models.Message, *ServiceError) {
	if !staff {
		return nil, &ServiceError{StatusCode: http.StatusForbidden, Message: "Only admin can send public messages"}
	}
	if subject == "" || content == "" {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Subject and content are required"}
	}

	message := &models.Message{
		SenderID:    senderID,
		Subject:     subject,
		Content:     content,
		MessageType: models.MessageTypeAdminToAll,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		s.logger.Error("Failed to create broadcast message", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to send message"}
	}
	return message, nil
}

// SendUserMessage sends a targeted admin-authored message. Staff only.
func (s *MessageService) SendUserMessage(ctx context.Context, senderID uuid.UUID, staff bool, recipientID uuid.UUID, subject, content string) (*models.Message, *ServiceError) {
	if !staff {
		return nil, &ServiceError{StatusCode: http.StatusForbidden, Message: "Only admin can send targeted messages"}
	}
	if subject == "" || content == "" {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Subject and content are required"}
	}

	if _, err := s.userRepo.FindByID(ctx, recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Recipient not found"}
		}
		s.logger.Error("Failed to look up recipient", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to send message"}
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: &recipientID,
		Subject:     subject,
		Content:     content,
		MessageType: models.MessageTypeAdminToUser,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		s.logger.Error("Failed to create message", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to send message"}
	}
	return message, nil
}

// ContactAdmin sends a user-to-admin message, auto-targeting the first staff
// account found.
func (s *MessageService) ContactAdmin(ctx context.Context, senderID uuid.UUID, staff bool, content string) (*models.Message, *ServiceError) {
	if staff {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Admins should use send_public_message or targeted messages"}
	}
	if content == "" {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Content is required"}
	}

	sender, err := s.userRepo.FindByID(ctx, senderID)
	if err != nil {
		s.logger.Error("Failed to look up sender", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to send message"}
	}

	admin, err := s.userRepo.FindFirstStaff(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "No admin found to send message to"}
		}
		s.logger.Error("Failed to look up admin", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to send message"}
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: &admin.ID,
		Subject:     fmt.Sprintf("Message from %s", sender.Username),
		Content:     content,
		MessageType: models.MessageTypeUserToAdmin,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		s.logger.Error("Failed to create message", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to send message"}
	}
	return message, nil
}

// MarkAsRead flags a message as read. Only the recipient, or staff, may do so.
func (s *MessageService) MarkAsRead(ctx context.Context, userID uuid.UUID, staff bool, messageID uuid.UUID) (*models.Message, *ServiceError) {
	message, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Message not found"}
		}
		s.logger.Error("Failed to fetch message", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch message"}
	}

	isRecipient := message.RecipientID != nil && *message.RecipientID == userID
	if !isRecipient && !staff {
		return nil, &ServiceError{StatusCode: http.StatusForbidden, Message: "You cannot mark this message as read"}
	}

	message.IsRead = true
	if err := s.messageRepo.Save(ctx, message); err != nil {
		s.logger.Error("Failed to mark message as read", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update message"}
	}
	decorateMessage(message)
	return message, nil
}

func decorateMessage(message *models.Message) {
	message.SenderUsername = message.Sender.Username
	if message.Recipient != nil {
		message.RecipientUsername = message.Recipient.Username
	}
}
