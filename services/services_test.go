package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"taskflow/dto"
	"taskflow/model"
	"taskflow/store"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store  *store.MemoryStore
	tasks  *TaskService
	dash   *DashboardService
	users  *UserService
	admin  *model.User
	member *model.User
	other  *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.NewMemoryStore()
	f := &fixture{
		store: st,
		tasks: NewTaskService(st, st),
		dash:  NewDashboardService(st),
		users: NewUserService(st, st),
	}
	seq := 0
	f.tasks.newID = func() string {
		seq++
		return fmt.Sprintf("task-%d", seq)
	}
	clock := testNow
	f.tasks.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	f.dash.now = func() time.Time { return testNow.Add(24 * time.Hour) }

	f.admin = f.addUser(t, "admin", model.RoleAdmin)
	f.member = f.addUser(t, "member", model.RoleMember)
	f.other = f.addUser(t, "other", model.RoleMember)
	return f
}

func (f *fixture) addUser(t *testing.T, id string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{
		ID:        id,
		Name:      id,
		Email:     id + "@example.com",
		Role:      role,
		CreatedAt: testNow,
	}
	if err := f.store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", id, err)
	}
	return u
}

func (f *fixture) createTask(t *testing.T, title string, assignees []string, items []model.TodoItem) *model.Task {
	t.Helper()
	if assignees == nil {
		assignees = []string{}
	}
	raw, _ := json.Marshal(assignees)
	task, err := f.tasks.Create(context.Background(), f.admin, dto.CreateTaskRequest{
		Title:         title,
		AssignedTo:    raw,
		TodoChecklist: items,
	})
	if err != nil {
		t.Fatalf("create task %s: %v", title, err)
	}
	return task
}
