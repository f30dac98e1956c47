// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// NotificationLog model.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
)

// NotificationFilter narrows notification log listings. Nil fields are ignored.
type NotificationFilter struct {
	Status  *domain.NotificationStatus
	Channel *domain.NotificationChannel
}

func notificationQuery(ctx context.Context, db *gorm.DB, userID string, f NotificationFilter) *gorm.DB {
	q := db.WithContext(ctx).Model(&domain.NotificationLog{}).Where("user_id = ?", userID)
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Channel != nil {
		q = q.Where("channel = ?", *f.Channel)
	}
	return q
}

// CreateNotificationLog inserts a prepared notification log row.
func CreateNotificationLog(ctx context.Context, db *gorm.DB, n *domain.NotificationLog) error {
	return db.WithContext(ctx).Create(n).Error
}

// GetNotificationLog fetches a log entry by id, or ErrNotFound.
func GetNotificationLog(ctx context.Context, db *gorm.DB, id string) (*domain.NotificationLog, error) {
	var n domain.NotificationLog
	if err := db.WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// SaveNotificationLog writes back every field of an existing log row.
func SaveNotificationLog(ctx context.Context, db *gorm.DB, n *domain.NotificationLog) error {
	return db.WithContext(ctx).Save(n).Error
}

// DeleteNotificationLog removes a log entry by id. Returns ErrNotFound when
// no row was deleted.
func DeleteNotificationLog(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.NotificationLog{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteNotificationLogsForUser removes every log entry owned by the user.
// Deleting zero rows is not an error.
func DeleteNotificationLogsForUser(ctx context.Context, db *gorm.DB, userID string) error {
	return db.WithContext(ctx).
		Delete(&domain.NotificationLog{}, "user_id = ?", userID).Error
}

// CountNotificationLogs returns the user's total log entries under the filter.
func CountNotificationLogs(ctx context.Context, db *gorm.DB, userID string, f NotificationFilter) (int64, error) {
	var total int64
	err := notificationQuery(ctx, db, userID, f).Count(&total).Error
	return total, err
}

// ListNotificationLogsPage returns a page of the user's log entries,
// newest first.
func ListNotificationLogsPage(ctx context.Context, db *gorm.DB, userID string, f NotificationFilter, offset, limit int) ([]domain.NotificationLog, error) {
	var out []domain.NotificationLog
	err := notificationQuery(ctx, db, userID, f).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountUnreadNotifications returns how many of the user's log entries are
// still in the SENT state.
func CountUnreadNotifications(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.NotificationLog{}).
		Where("user_id = ? AND status = ?", userID, domain.NotificationStatusSent).
		Count(&n).Error
	return n, err
}
