package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskflow/model"
)

func TestMemoryUserUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.CreateUser(ctx, &model.User{ID: "u1", Email: "ann@example.com"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	err := s.CreateUser(ctx, &model.User{ID: "u2", Email: "ANN@example.com"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}

	if err := s.CreateUser(ctx, &model.User{ID: "u3", Email: "bob@example.com"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	err = s.UpdateUser(ctx, &model.User{ID: "u3", Email: "ann@example.com"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected duplicate on update, got %v", err)
	}
	err = s.UpdateUser(ctx, &model.User{ID: "missing", Email: "x@example.com"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if _, err := s.GetUserByID(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	got, err := s.GetUsersByIDs(ctx, []string{"u1", "ghost", "u3"})
	if err != nil {
		t.Fatalf("get users: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 users, got %d", len(got))
	}
}

func TestMemoryTaskVersioning(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.CreateTask(ctx, &model.Task{ID: "t1", Title: "write"}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	first, _ := s.GetTask(ctx, "t1")
	second, _ := s.GetTask(ctx, "t1")

	first.Title = "first edit"
	if err := s.UpdateTask(ctx, first); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if first.Version != 1 {
		t.Fatalf("expected version 1, got %d", first.Version)
	}

	second.Title = "second edit"
	if err := s.UpdateTask(ctx, second); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}

	stored, _ := s.GetTask(ctx, "t1")
	if stored.Title != "first edit" {
		t.Fatalf("lost update: stored title %q", stored.Title)
	}

	if err := s.UpdateTask(ctx, &model.Task{ID: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := s.DeleteTask(ctx, "t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteTask(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestMemoryTaskReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	task := &model.Task{ID: "t1", TodoChecklist: []model.TodoItem{{Text: "a"}}}
	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("create: %v", err)
	}
	task.TodoChecklist[0].Completed = true

	got, _ := s.GetTask(ctx, "t1")
	if got.TodoChecklist[0].Completed {
		t.Fatal("store shares checklist with caller")
	}
}

func TestMemoryQueries(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base.Add(48 * time.Hour)
	past := base
	future := now.Add(time.Hour)

	tasks := []model.Task{
		{ID: "a", Status: model.StatusPending, Priority: model.PriorityLow, AssignedTo: []string{"u1"}, DueDate: &past, CreatedAt: base.Add(1 * time.Hour)},
		{ID: "b", Status: model.StatusInProgress, Priority: model.PriorityHigh, AssignedTo: []string{"u1", "u2"}, DueDate: &future, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "c", Status: model.StatusCompleted, Priority: model.PriorityHigh, AssignedTo: []string{"u2"}, DueDate: &past, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "d", Status: model.StatusPending, Priority: model.PriorityMedium, CreatedAt: base.Add(4 * time.Hour)},
	}
	for i := range tasks {
		if err := s.CreateTask(ctx, &tasks[i]); err != nil {
			t.Fatalf("create %s: %v", tasks[i].ID, err)
		}
	}

	list, err := s.ListTasks(ctx, TaskQuery{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "d" || list[1].ID != "c" {
		t.Fatalf("expected newest first [d c], got %v", ids(list))
	}

	mine, _ := s.ListTasks(ctx, TaskQuery{TaskFilter: TaskFilter{AssignedTo: "u1"}})
	if len(mine) != 2 || mine[0].ID != "b" || mine[1].ID != "a" {
		t.Fatalf("expected [b a] for u1, got %v", ids(mine))
	}

	overdue, _ := s.CountTasks(ctx, TaskFilter{OverdueAt: now})
	if overdue != 1 {
		t.Fatalf("expected 1 overdue task, got %d", overdue)
	}

	byPriority, _ := s.GroupCount(ctx, TaskFilter{}, GroupByPriority)
	if byPriority["High"] != 2 || byPriority["Low"] != 1 || byPriority["Medium"] != 1 {
		t.Fatalf("unexpected priority groups %v", byPriority)
	}
	byStatus, _ := s.GroupCount(ctx, TaskFilter{AssignedTo: "u2"}, GroupByStatus)
	if byStatus["In Progress"] != 1 || byStatus["Completed"] != 1 || byStatus["Pending"] != 0 {
		t.Fatalf("unexpected status groups %v", byStatus)
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
