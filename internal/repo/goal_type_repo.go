// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file covers goal types (layer configurations) and
// their custom field definitions.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
)

// CreateGoalType inserts a goal type row.
func CreateGoalType(ctx context.Context, db *gorm.DB, gt *domain.GoalType) error {
	return db.WithContext(ctx).Create(gt).Error
}

// GetGoalType fetches a goal type by id, or ErrNotFound.
func GetGoalType(ctx context.Context, db *gorm.DB, id string) (*domain.GoalType, error) {
	var gt domain.GoalType
	if err := db.WithContext(ctx).Where("id = ?", id).First(&gt).Error; err != nil {
		return nil, err
	}
	return &gt, nil
}

// SaveGoalType writes back every field of an existing goal type row.
func SaveGoalType(ctx context.Context, db *gorm.DB, gt *domain.GoalType) error {
	return db.WithContext(ctx).Save(gt).Error
}

// DeleteGoalType removes a goal type by id. Returns ErrNotFound when no row
// was deleted. Field definitions cascade.
func DeleteGoalType(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.GoalType{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountGoalTypes returns the total number of goal types.
func CountGoalTypes(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.GoalType{}).Count(&total).Error
	return total, err
}

// ListGoalTypesPage returns a page of goal types ordered by creation time.
func ListGoalTypesPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.GoalType, error) {
	var out []domain.GoalType
	err := db.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CreateFieldDefinition inserts a custom field definition row.
func CreateFieldDefinition(ctx context.Context, db *gorm.DB, fd *domain.CustomFieldDefinition) error {
	return db.WithContext(ctx).Create(fd).Error
}

// GetFieldDefinition fetches a field definition by id, or ErrNotFound.
func GetFieldDefinition(ctx context.Context, db *gorm.DB, id string) (*domain.CustomFieldDefinition, error) {
	var fd domain.CustomFieldDefinition
	if err := db.WithContext(ctx).Where("id = ?", id).First(&fd).Error; err != nil {
		return nil, err
	}
	return &fd, nil
}

// SaveFieldDefinition writes back every field of an existing definition row.
func SaveFieldDefinition(ctx context.Context, db *gorm.DB, fd *domain.CustomFieldDefinition) error {
	return db.WithContext(ctx).Save(fd).Error
}

// DeleteFieldDefinition removes a field definition by id. Returns ErrNotFound
// when no row was deleted.
func DeleteFieldDefinition(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.CustomFieldDefinition{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFieldDefinitions returns all definitions scoped to a goal type. Useful
// for building dynamic forms.
func ListFieldDefinitions(ctx context.Context, db *gorm.DB, goalTypeID string) ([]domain.CustomFieldDefinition, error) {
	var out []domain.CustomFieldDefinition
	err := db.WithContext(ctx).
		Where("goal_type_id = ?", goalTypeID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// ListRequiredFieldDefinitions returns only the required definitions for a
// goal type. Useful for server-side validation during goal creation.
func ListRequiredFieldDefinitions(ctx context.Context, db *gorm.DB, goalTypeID string) ([]domain.CustomFieldDefinition, error) {
	var out []domain.CustomFieldDefinition
	err := db.WithContext(ctx).
		Where("goal_type_id = ? AND required = ?", goalTypeID, true).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}
