// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// NotificationSettings model (at most one row per user).
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
)

// GetSettingsForUser fetches the settings row for a user, or ErrNotFound.
func GetSettingsForUser(ctx context.Context, db *gorm.DB, userID string) (*domain.NotificationSettings, error) {
	var s domain.NotificationSettings
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// SettingsExist reports whether a settings row is stored for the user.
func SettingsExist(ctx context.Context, db *gorm.DB, userID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.NotificationSettings{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n > 0, err
}

// SaveSettings inserts or updates a settings row. Returns ErrDuplicate when a
// concurrent insert for the same user wins the unique index race.
func SaveSettings(ctx context.Context, db *gorm.DB, s *domain.NotificationSettings) error {
	if err := db.WithContext(ctx).Save(s).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// DeleteSettingsForUser removes the user's settings row. Deleting zero rows
// is not an error; the user simply reverts to defaults.
func DeleteSettingsForUser(ctx context.Context, db *gorm.DB, userID string) error {
	return db.WithContext(ctx).
		Delete(&domain.NotificationSettings{}, "user_id = ?", userID).Error
}
