// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Goal model.
//
// Lookups here are deliberately not owner-scoped: the service layer fetches
// by id and performs the ownership check itself, keeping the storage
// abstraction generic across backing stores.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
)

// GoalFilter narrows goal listings. Nil fields are ignored.
type GoalFilter struct {
	Status *domain.GoalStatus
	Type   *domain.GoalTerm
}

// goalQuery composes the base query for a user's goals with optional filters.
func goalQuery(ctx context.Context, db *gorm.DB, userID string, f GoalFilter) *gorm.DB {
	q := db.WithContext(ctx).Model(&domain.Goal{}).Where("user_id = ?", userID)
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	return q
}

// CreateGoal inserts a fully prepared goal row.
func CreateGoal(ctx context.Context, db *gorm.DB, g *domain.Goal) error {
	return db.WithContext(ctx).Create(g).Error
}

// GetGoal fetches a goal by id, or ErrNotFound.
func GetGoal(ctx context.Context, db *gorm.DB, id string) (*domain.Goal, error) {
	var g domain.Goal
	if err := db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// SaveGoal writes back every field of an existing goal row.
func SaveGoal(ctx context.Context, db *gorm.DB, g *domain.Goal) error {
	return db.WithContext(ctx).Save(g).Error
}

// DeleteGoal removes a goal row by id. Returns ErrNotFound when no row
// was deleted.
func DeleteGoal(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.Goal{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountGoals returns the total goals for a user under the given filter.
func CountGoals(ctx context.Context, db *gorm.DB, userID string, f GoalFilter) (int64, error) {
	var total int64
	err := goalQuery(ctx, db, userID, f).Count(&total).Error
	return total, err
}

// ListGoalsPage returns a page of the user's goals, newest first.
func ListGoalsPage(ctx context.Context, db *gorm.DB, userID string, f GoalFilter, offset, limit int) ([]domain.Goal, error) {
	var out []domain.Goal
	err := goalQuery(ctx, db, userID, f).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
