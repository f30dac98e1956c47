// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Message model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
)

// CreateMessage inserts a message row with a fresh UUID, status SENT, and the
// given server-assigned timestamp.
func CreateMessage(ctx context.Context, db *gorm.DB, chatID, senderID, content string, at time.Time) (*domain.Message, error) {
	m := &domain.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   content,
		Timestamp: at,
		Status:    domain.MessageStatusSent,
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// GetMessage fetches a message by id, or ErrNotFound.
func GetMessage(ctx context.Context, db *gorm.DB, id string) (*domain.Message, error) {
	var m domain.Message
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// CountMessages returns the total number of messages in a chat.
func CountMessages(ctx context.Context, db *gorm.DB, chatID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("chat_id = ?", chatID).
		Count(&total).Error
	return total, err
}

// CountUnreadMessages returns how many messages in a chat were sent by other
// users and have not reached status READ.
func CountUnreadMessages(ctx context.Context, db *gorm.DB, chatID, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("chat_id = ? AND sender_id <> ? AND status <> ?", chatID, userID, domain.MessageStatusRead).
		Count(&total).Error
	return total, err
}

// ListMessagesPage returns a page of messages for a chat, newest first.
// The id tiebreak keeps the order deterministic for equal timestamps.
func ListMessagesPage(ctx context.Context, db *gorm.DB, chatID string, offset, limit int) ([]domain.Message, error) {
	var out []domain.Message
	err := db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("timestamp DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
