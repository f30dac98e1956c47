// Package services – NotificationSettingsService
//
// This file implements per-user channel preferences. A user with no stored
// row is served the channel defaults without persisting anything; the first
// update materializes the row.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
	"github.com/axisapp/axis-backend/internal/repo"
)

// NotificationSettingsService manages per-user notification channel
// preferences.
type NotificationSettingsService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewNotificationSettingsService constructs a NotificationSettingsService.
func NewNotificationSettingsService(db *gorm.DB) *NotificationSettingsService {
	return &NotificationSettingsService{DB: db}
}

// SettingsPatch carries optional preference updates. Nil fields are left
// untouched.
type SettingsPatch struct {
	EnableEmail    *bool
	EnablePush     *bool
	EnableTelegram *bool
}

// Get returns the user's stored settings, or the channel defaults when no
// row exists. Reading defaults does not persist them.
func (s *NotificationSettingsService) Get(ctx context.Context, userID string) (*domain.NotificationSettings, error) {
	st, err := repo.GetSettingsForUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return domain.DefaultNotificationSettings(userID), nil
		}
		return nil, err
	}
	return st, nil
}

// Update applies the non-nil fields of p to the user's settings, creating
// the row from defaults on first update.
func (s *NotificationSettingsService) Update(ctx context.Context, userID string, p SettingsPatch) (*domain.NotificationSettings, error) {
	st, err := repo.GetSettingsForUser(ctx, s.DB, userID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		st = domain.DefaultNotificationSettings(userID)
		st.ID = uuid.NewString()
		st.CreatedAt = time.Now().UTC()
	}

	if p.EnableEmail != nil {
		st.EnableEmail = *p.EnableEmail
	}
	if p.EnablePush != nil {
		st.EnablePush = *p.EnablePush
	}
	if p.EnableTelegram != nil {
		st.EnableTelegram = *p.EnableTelegram
	}
	st.UpdatedAt = time.Now().UTC()

	if err := repo.SaveSettings(ctx, s.DB, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Reset removes the user's stored settings so future reads serve the
// defaults again. Resetting a user with no stored row is not an error.
func (s *NotificationSettingsService) Reset(ctx context.Context, userID string) error {
	return repo.DeleteSettingsForUser(ctx, s.DB, userID)
}
