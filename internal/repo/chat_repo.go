// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Chat
// aggregate and its membership rows.
//
// Membership is stored as explicit chat_members rows, so "is user a member"
// and "all chats for user" are plain index-assisted lookups. Private-chat
// uniqueness is enforced by the unique index on chats.pair_key; CreateChat
// translates that violation to ErrDuplicate so the service layer can surface
// a conflict.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
)

// CreateChat inserts a chat together with its member rows in one transaction.
// Returns ErrDuplicate when the private pair key already exists.
func CreateChat(ctx context.Context, db *gorm.DB, chat *domain.Chat) error {
	if err := db.WithContext(ctx).Create(chat).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetChat fetches a chat by id with its members loaded, or ErrNotFound.
func GetChat(ctx context.Context, db *gorm.DB, id string) (*domain.Chat, error) {
	var c domain.Chat
	err := db.WithContext(ctx).
		Preload("Members").
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListChatsForUser returns every chat the user belongs to, most recently
// active first (falling back to creation time for chats without messages).
func ListChatsForUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Chat, error) {
	var out []domain.Chat
	err := db.WithContext(ctx).
		Preload("Members").
		Joins("JOIN chat_members cm ON cm.chat_id = chats.id").
		Where("cm.user_id = ?", userID).
		Order("COALESCE(chats.last_message_at, chats.created_at) DESC").
		Find(&out).Error
	return out, err
}

// ListGroupChatsForOrganization returns all group chats in an organization,
// newest first.
func ListGroupChatsForOrganization(ctx context.Context, db *gorm.DB, orgID string) ([]domain.Chat, error) {
	var out []domain.Chat
	err := db.WithContext(ctx).
		Preload("Members").
		Where("organization_id = ? AND type = ?", orgID, domain.ChatTypeGroup).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// FindPrivateChat looks up the private chat between two users via the
// canonical pair key. The lookup is symmetric in its arguments.
// Returns ErrNotFound when no such chat exists.
func FindPrivateChat(ctx context.Context, db *gorm.DB, userA, userB string) (*domain.Chat, error) {
	var c domain.Chat
	err := db.WithContext(ctx).
		Preload("Members").
		Where("type = ? AND pair_key = ?", domain.ChatTypePrivate, domain.PairKey(userA, userB)).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// IsChatMember reports whether userID has a membership row for chatID.
func IsChatMember(ctx context.Context, db *gorm.DB, chatID, userID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&n).Error
	return n > 0, err
}

// TouchLastMessage sets the chat's last_message_at to the given time.
// Returns ErrNotFound when the chat does not exist.
func TouchLastMessage(ctx context.Context, db *gorm.DB, chatID string, at time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ?", chatID).
		Update("last_message_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
