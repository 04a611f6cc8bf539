package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"taskflow/apperror"
	"taskflow/model"
)

func TestListMembersCountsTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createTask(t, "a", []string{"member"}, nil)
	f.createTask(t, "b", []string{"member", "other"}, []model.TodoItem{{Text: "x", Completed: true}, {Text: "y"}})
	f.createTask(t, "c", []string{"member"}, []model.TodoItem{{Text: "x", Completed: true}})

	members, err := f.users.ListMembers(ctx)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	for _, m := range members {
		if m.Role != model.RoleMember {
			t.Fatalf("admin listed: %+v", m)
		}
		switch m.ID {
		case "member":
			if m.PendingTasks != 1 || m.InProgressTasks != 1 || m.CompletedTasks != 1 {
				t.Fatalf("unexpected member counts %+v", m)
			}
		case "other":
			if m.PendingTasks != 0 || m.InProgressTasks != 1 || m.CompletedTasks != 0 {
				t.Fatalf("unexpected other counts %+v", m)
			}
		}
	}

	body, _ := json.Marshal(members[0])
	var decoded map[string]any
	_ = json.Unmarshal(body, &decoded)
	if _, ok := decoded["password"]; ok {
		t.Fatal("password must not be serialized")
	}
	if _, ok := decoded["pendingTasks"]; !ok {
		t.Fatalf("expected counts inline, got %s", body)
	}
}

func TestGetUser(t *testing.T) {
	f := newFixture(t)
	user, err := f.users.GetUser(context.Background(), "member")
	if err != nil || user.Email != "member@example.com" {
		t.Fatalf("get user: %v %+v", err, user)
	}
	if _, err := f.users.GetUser(context.Background(), "nope"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
