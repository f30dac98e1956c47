// Package services – GoalTypeService
//
// This file implements the catalog of goal types and their custom field
// definitions. Types and fields are global, not user-scoped; deleting a type
// cascades to its field definitions.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
	"github.com/axisapp/axis-backend/internal/repo"
)

// GoalTypeService manages the global goal-type catalog and the custom field
// definitions attached to each type.
type GoalTypeService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// TitleMaxLen caps stored type titles by rune length.
	TitleMaxLen int
}

// NewGoalTypeService constructs a GoalTypeService with sane defaults.
func NewGoalTypeService(db *gorm.DB) *GoalTypeService {
	return &GoalTypeService{
		DB:          db,
		TitleMaxLen: 100,
	}
}

// CreateType persists a new goal type with the given title.
func (s *GoalTypeService) CreateType(ctx context.Context, title string) (*domain.GoalType, error) {
	title = normalizeName(title)
	if err := s.validateTitle(title); err != nil {
		return nil, err
	}
	gt := &domain.GoalType{ID: uuid.NewString(), Title: title}
	if err := repo.CreateGoalType(ctx, s.DB, gt); err != nil {
		return nil, err
	}
	return gt, nil
}

// GetType fetches a goal type by id, or ErrGoalTypeNotFound.
func (s *GoalTypeService) GetType(ctx context.Context, id string) (*domain.GoalType, error) {
	gt, err := repo.GetGoalType(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrGoalTypeNotFound
		}
		return nil, err
	}
	return gt, nil
}

// ListTypesPage returns one page of goal types with the total count.
func (s *GoalTypeService) ListTypesPage(ctx context.Context, offset, limit int) ([]domain.GoalType, int64, error) {
	total, err := repo.CountGoalTypes(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	items, err := repo.ListGoalTypesPage(ctx, s.DB, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// RenameType updates the title of an existing goal type.
func (s *GoalTypeService) RenameType(ctx context.Context, id, title string) (*domain.GoalType, error) {
	gt, err := s.GetType(ctx, id)
	if err != nil {
		return nil, err
	}
	title = normalizeName(title)
	if err := s.validateTitle(title); err != nil {
		return nil, err
	}
	gt.Title = title
	if err := repo.SaveGoalType(ctx, s.DB, gt); err != nil {
		return nil, err
	}
	return gt, nil
}

// DeleteType removes a goal type and its field definitions.
func (s *GoalTypeService) DeleteType(ctx context.Context, id string) error {
	if err := repo.DeleteGoalType(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrGoalTypeNotFound
		}
		return err
	}
	return nil
}

// FieldInput carries the mutable attributes of a custom field definition.
type FieldInput struct {
	Label       string
	Type        string
	Required    bool
	Placeholder string
}

// AddField attaches a new custom field definition to an existing goal type.
func (s *GoalTypeService) AddField(ctx context.Context, goalTypeID string, in FieldInput) (*domain.CustomFieldDefinition, error) {
	if _, err := s.GetType(ctx, goalTypeID); err != nil {
		return nil, err
	}
	if err := validateField(in); err != nil {
		return nil, err
	}
	fd := &domain.CustomFieldDefinition{
		ID:          uuid.NewString(),
		GoalTypeID:  goalTypeID,
		Label:       normalizeName(in.Label),
		Type:        strings.TrimSpace(in.Type),
		Required:    in.Required,
		Placeholder: in.Placeholder,
	}
	if err := repo.CreateFieldDefinition(ctx, s.DB, fd); err != nil {
		return nil, err
	}
	return fd, nil
}

// ListFields returns the custom field definitions of a goal type. With
// requiredOnly set, only definitions that must be filled in are returned.
func (s *GoalTypeService) ListFields(ctx context.Context, goalTypeID string, requiredOnly bool) ([]domain.CustomFieldDefinition, error) {
	if _, err := s.GetType(ctx, goalTypeID); err != nil {
		return nil, err
	}
	if requiredOnly {
		return repo.ListRequiredFieldDefinitions(ctx, s.DB, goalTypeID)
	}
	return repo.ListFieldDefinitions(ctx, s.DB, goalTypeID)
}

// UpdateField replaces the mutable attributes of a custom field definition.
func (s *GoalTypeService) UpdateField(ctx context.Context, id string, in FieldInput) (*domain.CustomFieldDefinition, error) {
	fd, err := repo.GetFieldDefinition(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}
	if err := validateField(in); err != nil {
		return nil, err
	}
	fd.Label = normalizeName(in.Label)
	fd.Type = strings.TrimSpace(in.Type)
	fd.Required = in.Required
	fd.Placeholder = in.Placeholder
	if err := repo.SaveFieldDefinition(ctx, s.DB, fd); err != nil {
		return nil, err
	}
	return fd, nil
}

// FieldPatch carries a partial field update; nil members are left untouched.
type FieldPatch struct {
	Label       *string
	Type        *string
	Required    *bool
	Placeholder *string
}

// PatchField applies the non-nil members of p to an existing field definition
// and validates the merged result.
func (s *GoalTypeService) PatchField(ctx context.Context, id string, p FieldPatch) (*domain.CustomFieldDefinition, error) {
	fd, err := repo.GetFieldDefinition(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}
	if p.Label != nil {
		fd.Label = normalizeName(*p.Label)
	}
	if p.Type != nil {
		fd.Type = strings.TrimSpace(*p.Type)
	}
	if p.Required != nil {
		fd.Required = *p.Required
	}
	if p.Placeholder != nil {
		fd.Placeholder = *p.Placeholder
	}
	if err := validateField(FieldInput{Label: fd.Label, Type: fd.Type}); err != nil {
		return nil, err
	}
	if err := repo.SaveFieldDefinition(ctx, s.DB, fd); err != nil {
		return nil, err
	}
	return fd, nil
}

// DeleteField removes a custom field definition.
func (s *GoalTypeService) DeleteField(ctx context.Context, id string) error {
	if err := repo.DeleteFieldDefinition(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrFieldNotFound
		}
		return err
	}
	return nil
}

func (s *GoalTypeService) validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidGoal)
	}
	if s.TitleMaxLen > 0 && utf8.RuneCountInString(title) > s.TitleMaxLen {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidGoal, s.TitleMaxLen)
	}
	return nil
}

func validateField(in FieldInput) error {
	if normalizeName(in.Label) == "" {
		return fmt.Errorf("%w: field label is required", ErrInvalidGoal)
	}
	if strings.TrimSpace(in.Type) == "" {
		return fmt.Errorf("%w: field type is required", ErrInvalidGoal)
	}
	return nil
}
