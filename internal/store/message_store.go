package store

import (
	"context"
	"errors"
	"strings"

	"heartlink/backend/internal/apperr"
	"heartlink/backend/internal/models"

	"gorm.io/gorm"
)

// MessageStore provides data access methods for per-match messages.
// Appends go through the MatchStore so a message can never exist without a
// qualifying match.
type MessageStore struct {
	db      *gorm.DB
	matches *MatchStore
}

// NewMessageStore creates a new store bound to the given DB connection.
func NewMessageStore(db *gorm.DB, matches *MatchStore) *MessageStore {
	return &MessageStore{db: db, matches: matches}
}

// ListBetween returns every message exchanged inside the pair's match,
// ascending by timestamp, with the sender's account preloaded for display.
func (s *MessageStore) ListBetween(ctx context.Context, usernameA, usernameB string) ([]models.Message, error) {
	a, b := models.NormalizePair(usernameA, usernameB)
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("user_a = ? AND user_b = ?", a, b).
		Preload("SenderAccount").
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, apperr.Wrap(err, "message not found")
	}
	return messages, nil
}

// Append persists a new message from sender to receiver. It fails with
// Forbidden when no match exists between the two.
func (s *MessageStore) Append(ctx context.Context, sender, receiver, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("message content is required")
	}
	if sender == "" || receiver == "" {
		return nil, apperr.Validation("sender and receiver are required")
	}
	if sender == receiver {
		return nil, apperr.Validation("cannot send message to yourself")
	}

	match, err := s.matches.Pair(ctx, sender, receiver)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Kind == apperr.KindNotFound {
			return nil, apperr.Forbidden("no match exists between these users")
		}
		return nil, err
	}

	message := models.Message{
		UserA:   match.UserA,
		UserB:   match.UserB,
		Sender:  sender,
		Content: content,
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, apperr.Wrap(err, "message not found")
	}

	// Reload with sender display info attached.
	if err := s.db.WithContext(ctx).
		Preload("SenderAccount").
		First(&message, message.ID).Error; err != nil {
		return nil, apperr.Wrap(err, "message not found")
	}
	return &message, nil
}

// Delete removes a message permanently. Only the original sender may delete.
func (s *MessageStore) Delete(ctx context.Context, messageID uint, requester string) error {
	var message models.Message
	if err := s.db.WithContext(ctx).First(&message, messageID).Error; err != nil {
		return apperr.Wrap(err, "message not found")
	}

	if message.Sender != requester {
		return apperr.Forbidden("only the sender can delete this message")
	}

	if err := s.db.WithContext(ctx).Delete(&models.Message{}, messageID).Error; err != nil {
		return apperr.Wrap(err, "message not found")
	}
	return nil
}

// AuditAll returns one page of the messages exchanged between non-admin
// accounts, ascending by timestamp, with the sender preloaded and the total
// row count alongside. Conversations that involve an admin account are
// excluded from the audit view.
func (s *MessageStore) AuditAll(ctx context.Context, page, limit int) ([]models.Message, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.Message{}).
		Joins("JOIN users ua ON ua.username = messages.user_a").
		Joins("JOIN users ub ON ub.username = messages.user_b").
		Where("ua.role_id <> ? AND ub.role_id <> ?", models.RoleAdmin, models.RoleAdmin).
		Count(&total).Error
	if err != nil {
		return nil, 0, apperr.Wrap(err, "message not found")
	}

	var messages []models.Message
	err = s.db.WithContext(ctx).
		Joins("JOIN users ua ON ua.username = messages.user_a").
		Joins("JOIN users ub ON ub.username = messages.user_b").
		Where("ua.role_id <> ? AND ub.role_id <> ?", models.RoleAdmin, models.RoleAdmin).
		Preload("SenderAccount").
		Order("messages.created_at ASC, messages.id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, apperr.Wrap(err, "message not found")
	}
	return messages, total, nil
}
