// Package services – NotificationLogService
//
// This file implements the per-user notification history: recording sent
// notifications, retrieving and filtering them, updating delivery status,
// and deleting single entries or a user's entire history.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
	"github.com/axisapp/axis-backend/internal/repo"
)

// NotificationLogService manages a user's notification history.
type NotificationLogService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewNotificationLogService constructs a NotificationLogService.
func NewNotificationLogService(db *gorm.DB) *NotificationLogService {
	return &NotificationLogService{DB: db}
}

// NotificationInput carries the fields of a notification log entry to record.
type NotificationInput struct {
	Channel  domain.NotificationChannel
	Status   domain.NotificationStatus
	Subject  string
	Content  string
	Metadata *string
}

// NotificationPatch carries optional updates to a log entry. Nil fields are
// left untouched.
type NotificationPatch struct {
	Status   *domain.NotificationStatus
	Subject  *string
	Content  *string
	Metadata *string
}

// Record persists a new notification log entry for userID. An omitted status
// defaults to SENT.
func (s *NotificationLogService) Record(ctx context.Context, userID string, in NotificationInput) (*domain.NotificationLog, error) {
	if in.Status == "" {
		in.Status = domain.NotificationStatusSent
	}
	if !in.Channel.Valid() {
		return nil, fmt.Errorf("%w: unknown channel %q", ErrInvalidNotification, in.Channel)
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidNotification, in.Status)
	}

	now := time.Now().UTC()
	n := &domain.NotificationLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Channel:   in.Channel,
		Status:    in.Status,
		Subject:   in.Subject,
		Content:   in.Content,
		Metadata:  in.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.CreateNotificationLog(ctx, s.DB, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Get fetches a log entry owned by userID, or ErrNotificationNotFound.
// Entries owned by other users yield the same error as absent ones.
func (s *NotificationLogService) Get(ctx context.Context, id, userID string) (*domain.NotificationLog, error) {
	return s.getOwned(ctx, id, userID)
}

// ListPage returns one page of the user's log entries matching the filter,
// newest first, along with the total match count.
func (s *NotificationLogService) ListPage(ctx context.Context, userID string, f repo.NotificationFilter, offset, limit int) ([]domain.NotificationLog, int64, error) {
	total, err := repo.CountNotificationLogs(ctx, s.DB, userID, f)
	if err != nil {
		return nil, 0, err
	}
	items, err := repo.ListNotificationLogsPage(ctx, s.DB, userID, f, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Patch applies the non-nil fields of p to a log entry owned by userID and
// stores the result.
func (s *NotificationLogService) Patch(ctx context.Context, id, userID string, p NotificationPatch) (*domain.NotificationLog, error) {
	n, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidNotification, *p.Status)
		}
		n.Status = *p.Status
	}
	if p.Subject != nil {
		n.Subject = *p.Subject
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Metadata != nil {
		n.Metadata = p.Metadata
	}
	n.UpdatedAt = time.Now().UTC()

	if err := repo.SaveNotificationLog(ctx, s.DB, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete removes a log entry owned by userID, or returns
// ErrNotificationNotFound.
func (s *NotificationLogService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	if err := repo.DeleteNotificationLog(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

// DeleteAll removes every log entry owned by userID. Deleting an empty
// history is not an error.
func (s *NotificationLogService) DeleteAll(ctx context.Context, userID string) error {
	return repo.DeleteNotificationLogsForUser(ctx, s.DB, userID)
}

// UnreadCount returns how many of the user's notifications are still SENT,
// i.e. neither delivered, read, nor failed.
func (s *NotificationLogService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return repo.CountUnreadNotifications(ctx, s.DB, userID)
}

func (s *NotificationLogService) getOwned(ctx context.Context, id, userID string) (*domain.NotificationLog, error) {
	n, err := repo.GetNotificationLog(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	if n.UserID != userID {
		return nil, ErrNotificationNotFound
	}
	return n, nil
}
