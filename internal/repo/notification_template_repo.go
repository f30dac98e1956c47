// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// NotificationTemplate model.
//
// The unique index on templates.type is the authoritative uniqueness guard;
// Create/Save translate its violation to ErrDuplicate so the pre-checked
// conflict in the service layer cannot be raced past.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
)

// CreateTemplate inserts a template row. Returns ErrDuplicate when the type
// is already taken.
func CreateTemplate(ctx context.Context, db *gorm.DB, t *domain.NotificationTemplate) error {
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetTemplate fetches a template by id, or ErrNotFound.
func GetTemplate(ctx context.Context, db *gorm.DB, id string) (*domain.NotificationTemplate, error) {
	var t domain.NotificationTemplate
	if err := db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// FindTemplateByType fetches a template by its type key, or ErrNotFound.
func FindTemplateByType(ctx context.Context, db *gorm.DB, typ string) (*domain.NotificationTemplate, error) {
	var t domain.NotificationTemplate
	if err := db.WithContext(ctx).Where("type = ?", typ).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveTemplate writes back every field of an existing template row.
// Returns ErrDuplicate when the new type collides with another template.
func SaveTemplate(ctx context.Context, db *gorm.DB, t *domain.NotificationTemplate) error {
	if err := db.WithContext(ctx).Save(t).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// DeleteTemplate removes a template by id. Returns ErrNotFound when no row
// was deleted.
func DeleteTemplate(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.NotificationTemplate{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountTemplates returns the total number of templates.
func CountTemplates(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.NotificationTemplate{}).Count(&total).Error
	return total, err
}

// ListTemplatesPage returns a page of templates ordered by type.
func ListTemplatesPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.NotificationTemplate, error) {
	var out []domain.NotificationTemplate
	err := db.WithContext(ctx).
		Order("type ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
