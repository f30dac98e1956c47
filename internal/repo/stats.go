// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used for
// conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
)

// ChatsStats returns aggregate metadata for a user's chats: the total number
// of rows and the latest activity timestamp (last message, falling back to
// creation) among them. When the user has no chats the count is 0 and the
// timestamp is nil.
func ChatsStats(ctx context.Context, db *gorm.DB, userID string) (count int64, lastActivity *time.Time, err error) {
	q := db.WithContext(ctx).
		Model(&domain.Chat{}).
		Joins("JOIN chat_members cm ON cm.chat_id = chats.id").
		Where("cm.user_id = ?", userID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Latest activity via ORDER BY + LIMIT (avoids MAX() -> TEXT in SQLite).
	var row struct {
		TS time.Time
	}
	err = q.Select("COALESCE(chats.last_message_at, chats.created_at) AS ts").
		Order("ts DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return 0, nil, err
	}
	return count, &row.TS, nil
}

// GoalsStats returns aggregate metadata for a user's goals: total rows and
// the greatest UpdatedAt among them, or nil when the user has no goals.
func GoalsStats(ctx context.Context, db *gorm.DB, userID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Goal{}).Where("user_id = ?", userID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
