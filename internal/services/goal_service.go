// Package services – GoalService
//
// This file implements the user-scoped goal lifecycle: creation, retrieval,
// partial and full updates, deletion, and filtered listing. Every operation
// is bound to the owning user; a goal owned by someone else is
// indistinguishable from an absent one.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
	"github.com/axisapp/axis-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// GoalService provides goal operations scoped to the owning user.
type GoalService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// TitleMaxLen caps stored goal titles by rune length.
	TitleMaxLen int
}

// NewGoalService constructs a GoalService with sane defaults.
func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{
		DB:          db,
		TitleMaxLen: 200,
	}
}

// GoalInput carries the full field set of a goal for create and replace.
type GoalInput struct {
	Title          string
	Description    string
	Type           domain.GoalTerm
	Status         domain.GoalStatus
	StartDate      *time.Time
	Deadline       *time.Time
	CompletionDate *time.Time
	ParentID       *string
}

// GoalPatch carries optional field updates for a goal. Nil fields are left
// untouched. The parent link is fixed at creation and has no patch field.
type GoalPatch struct {
	Title          *string
	Description    *string
	Type           *domain.GoalTerm
	Status         *domain.GoalStatus
	StartDate      *time.Time
	Deadline       *time.Time
	CompletionDate *time.Time
}

// Create validates and persists a new goal owned by userID. An omitted
// status defaults to NOT_STARTED.
func (s *GoalService) Create(ctx context.Context, userID string, in GoalInput) (*domain.Goal, error) {
	tr := otel.Tracer("services/GoalService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	in.Title = normalizeName(in.Title)
	if in.Status == "" {
		in.Status = domain.GoalStatusNotStarted
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	g := &domain.Goal{
		ID:             uuid.NewString(),
		Title:          in.Title,
		Description:    in.Description,
		Type:           in.Type,
		Status:         in.Status,
		StartDate:      in.StartDate,
		Deadline:       in.Deadline,
		CompletionDate: in.CompletionDate,
		ParentID:       in.ParentID,
		UserID:         userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := repo.CreateGoal(ctx, s.DB, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Get fetches a goal owned by userID, or ErrGoalNotFound. Goals owned by
// other users yield the same error as absent ones.
func (s *GoalService) Get(ctx context.Context, id, userID string) (*domain.Goal, error) {
	return s.getOwned(ctx, id, userID)
}

// ListPage returns one page of the user's goals matching the filter, newest
// first, along with the total match count.
func (s *GoalService) ListPage(ctx context.Context, userID string, f repo.GoalFilter, offset, limit int) ([]domain.Goal, int64, error) {
	total, err := repo.CountGoals(ctx, s.DB, userID, f)
	if err != nil {
		return nil, 0, err
	}
	items, err := repo.ListGoalsPage(ctx, s.DB, userID, f, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Patch applies the non-nil fields of p to a goal owned by userID and stores
// the result.
func (s *GoalService) Patch(ctx context.Context, id, userID string, p GoalPatch) (*domain.Goal, error) {
	g, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		g.Title = normalizeName(*p.Title)
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.Type != nil {
		g.Type = *p.Type
	}
	if p.Status != nil {
		g.Status = *p.Status
	}
	if p.StartDate != nil {
		g.StartDate = p.StartDate
	}
	if p.Deadline != nil {
		g.Deadline = p.Deadline
	}
	if p.CompletionDate != nil {
		g.CompletionDate = p.CompletionDate
	}

	if err := s.validate(GoalInput{
		Title:  g.Title,
		Type:   g.Type,
		Status: g.Status,
	}); err != nil {
		return nil, err
	}

	g.UpdatedAt = time.Now().UTC()
	if err := repo.SaveGoal(ctx, s.DB, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Replace overwrites every mutable field of a goal owned by userID with in.
// The id, owner, parent link, and creation timestamp are preserved; a ParentID
// in the input is ignored.
func (s *GoalService) Replace(ctx context.Context, id, userID string, in GoalInput) (*domain.Goal, error) {
	g, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	in.Title = normalizeName(in.Title)
	if in.Status == "" {
		in.Status = domain.GoalStatusNotStarted
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	g.Title = in.Title
	g.Description = in.Description
	g.Type = in.Type
	g.Status = in.Status
	g.StartDate = in.StartDate
	g.Deadline = in.Deadline
	g.CompletionDate = in.CompletionDate
	g.UpdatedAt = time.Now().UTC()

	if err := repo.SaveGoal(ctx, s.DB, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Delete removes a goal owned by userID, or returns ErrGoalNotFound.
func (s *GoalService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	if err := repo.DeleteGoal(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrGoalNotFound
		}
		return err
	}
	return nil
}

func (s *GoalService) getOwned(ctx context.Context, id, userID string) (*domain.Goal, error) {
	g, err := repo.GetGoal(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	if g.UserID != userID {
		return nil, ErrGoalNotFound
	}
	return g, nil
}

func (s *GoalService) validate(in GoalInput) error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidGoal)
	}
	if s.TitleMaxLen > 0 && utf8.RuneCountInString(in.Title) > s.TitleMaxLen {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidGoal, s.TitleMaxLen)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unknown goal type %q", ErrInvalidGoal, in.Type)
	}
	if !in.Status.Valid() {
		return fmt.Errorf("%w: unknown goal status %q", ErrInvalidGoal, in.Status)
	}
	return nil
}
