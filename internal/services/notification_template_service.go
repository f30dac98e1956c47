// Package services – NotificationTemplateService
//
// This file implements the global template catalog. Template types are
// normalized to upper case and must be unique across the catalog; an update
// may keep its own type without tripping the uniqueness check.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
	"github.com/axisapp/axis-backend/internal/repo"
)

// typeCaser upper-cases template types without locale-specific surprises.
var typeCaser = cases.Upper(language.Und)

// NotificationTemplateService manages the global notification template
// catalog.
type NotificationTemplateService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewNotificationTemplateService constructs a NotificationTemplateService.
func NewNotificationTemplateService(db *gorm.DB) *NotificationTemplateService {
	return &NotificationTemplateService{DB: db}
}

// TemplateInput carries the fields of a notification template.
type TemplateInput struct {
	Type    string
	Subject string
	Content string
}

// Create persists a new template. The type is normalized to upper case and
// must not collide with an existing template.
func (s *NotificationTemplateService) Create(ctx context.Context, in TemplateInput) (*domain.NotificationTemplate, error) {
	typ, err := normalizeTemplateType(in.Type)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidNotification)
	}

	now := time.Now().UTC()
	t := &domain.NotificationTemplate{
		ID:        uuid.NewString(),
		Type:      typ,
		Subject:   in.Subject,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.CreateTemplate(ctx, s.DB, t); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrTemplateTypeExists
		}
		return nil, err
	}
	return t, nil
}

// Get fetches a template by id, or ErrTemplateNotFound.
func (s *NotificationTemplateService) Get(ctx context.Context, id string) (*domain.NotificationTemplate, error) {
	t, err := repo.GetTemplate(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return t, nil
}

// GetByType fetches a template by its normalized type, or ErrTemplateNotFound.
func (s *NotificationTemplateService) GetByType(ctx context.Context, typ string) (*domain.NotificationTemplate, error) {
	typ, err := normalizeTemplateType(typ)
	if err != nil {
		return nil, err
	}
	t, err := repo.FindTemplateByType(ctx, s.DB, typ)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListPage returns one page of templates ordered by type with the total
// count.
func (s *NotificationTemplateService) ListPage(ctx context.Context, offset, limit int) ([]domain.NotificationTemplate, int64, error) {
	total, err := repo.CountTemplates(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	items, err := repo.ListTemplatesPage(ctx, s.DB, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update replaces the fields of an existing template. Keeping the template's
// own type is allowed; taking another template's type is a conflict.
func (s *NotificationTemplateService) Update(ctx context.Context, id string, in TemplateInput) (*domain.NotificationTemplate, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	typ, err := normalizeTemplateType(in.Type)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidNotification)
	}

	if typ != t.Type {
		other, err := repo.FindTemplateByType(ctx, s.DB, typ)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		if err == nil && other.ID != id {
			return nil, ErrTemplateTypeExists
		}
	}

	t.Type = typ
	t.Subject = in.Subject
	t.Content = in.Content
	t.UpdatedAt = time.Now().UTC()

	if err := repo.SaveTemplate(ctx, s.DB, t); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrTemplateTypeExists
		}
		return nil, err
	}
	return t, nil
}

// Delete removes a template by id, or returns ErrTemplateNotFound.
func (s *NotificationTemplateService) Delete(ctx context.Context, id string) error {
	if err := repo.DeleteTemplate(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	return nil
}

func normalizeTemplateType(typ string) (string, error) {
	typ = typeCaser.String(strings.TrimSpace(typ))
	if typ == "" {
		return "", fmt.Errorf("%w: type is required", ErrInvalidNotification)
	}
	return typ, nil
}
