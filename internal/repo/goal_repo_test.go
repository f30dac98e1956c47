package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/axisapp/axis-backend/internal/domain"
)

func TestGoalCRUD(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	g := &domain.Goal{
		ID:        uuid.NewString(),
		Title:     "Learn Go",
		Type:      domain.GoalTermLong,
		Status:    domain.GoalStatusNotStarted,
		UserID:    "u1",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := CreateGoal(ctx, db, g); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	got, err := GetGoal(ctx, db, g.ID)
	if err != nil || got.Title != "Learn Go" {
		t.Fatalf("GetGoal: %+v err %v", got, err)
	}

	got.Status = domain.GoalStatusInProgress
	if err := SaveGoal(ctx, db, got); err != nil {
		t.Fatalf("SaveGoal: %v", err)
	}
	reloaded, err := GetGoal(ctx, db, g.ID)
	if err != nil || reloaded.Status != domain.GoalStatusInProgress {
		t.Fatalf("reload: %+v err %v", reloaded, err)
	}

	if err := DeleteGoal(ctx, db, g.ID); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}
	if _, err := GetGoal(ctx, db, g.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := DeleteGoal(ctx, db, g.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestListGoalsPage_FilterAndOrder(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	mk := func(title string, term domain.GoalTerm, st domain.GoalStatus, offset time.Duration) {
		t.Helper()
		g := &domain.Goal{
			ID:        uuid.NewString(),
			Title:     title,
			Type:      term,
			Status:    st,
			UserID:    "u1",
			CreatedAt: base.Add(offset),
			UpdatedAt: base.Add(offset),
		}
		if err := CreateGoal(ctx, db, g); err != nil {
			t.Fatalf("seed %s: %v", title, err)
		}
	}
	mk("oldest", domain.GoalTermShort, domain.GoalStatusInProgress, 0)
	mk("middle", domain.GoalTermLong, domain.GoalStatusInProgress, time.Minute)
	mk("newest", domain.GoalTermShort, domain.GoalStatusCompleted, 2*time.Minute)

	goals, err := ListGoalsPage(ctx, db, "u1", GoalFilter{}, 0, 2)
	if err != nil {
		t.Fatalf("ListGoalsPage: %v", err)
	}
	if len(goals) != 2 || goals[0].Title != "newest" || goals[1].Title != "middle" {
		t.Fatalf("unexpected order: %+v", goals)
	}

	st := domain.GoalStatusInProgress
	total, err := CountGoals(ctx, db, "u1", GoalFilter{Status: &st})
	if err != nil || total != 2 {
		t.Fatalf("status count = %d, %v", total, err)
	}

	term := domain.GoalTermShort
	goals, err = ListGoalsPage(ctx, db, "u1", GoalFilter{Status: &st, Type: &term}, 0, 10)
	if err != nil || len(goals) != 1 || goals[0].Title != "oldest" {
		t.Fatalf("combined filter: %+v err %v", goals, err)
	}

	// Other users see nothing
	total, err = CountGoals(ctx, db, "u2", GoalFilter{})
	if err != nil || total != 0 {
		t.Fatalf("foreign count = %d, %v", total, err)
	}
}

func TestGoalsStats(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	count, ts, err := GoalsStats(ctx, db, "u1")
	if err != nil || count != 0 || ts != nil {
		t.Fatalf("empty stats = %d, %v, %v", count, ts, err)
	}

	latest := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		g := &domain.Goal{
			ID:        uuid.NewString(),
			Title:     fmt.Sprintf("g%d", i),
			Type:      domain.GoalTermShort,
			Status:    domain.GoalStatusNotStarted,
			UserID:    "u1",
			CreatedAt: latest.Add(-time.Duration(i) * time.Hour),
			UpdatedAt: latest.Add(-time.Duration(i) * time.Hour),
		}
		if err := CreateGoal(ctx, db, g); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	count, ts, err = GoalsStats(ctx, db, "u1")
	if err != nil {
		t.Fatalf("GoalsStats: %v", err)
	}
	if count != 3 || ts == nil {
		t.Fatalf("stats = %d, %v", count, ts)
	}
	if !ts.Equal(latest) {
		t.Fatalf("max updated_at = %v; want %v", ts, latest)
	}
}
