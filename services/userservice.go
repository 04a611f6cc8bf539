package services

import (
	"context"

	"taskflow/dto"
	"taskflow/model"
	"taskflow/store"
)

// UserService is the member directory.
type UserService struct {
	users store.UserStore
	tasks store.TaskStore
}

func NewUserService(users store.UserStore, tasks store.TaskStore) *UserService {
	return &UserService{users: users, tasks: tasks}
}

// ListMembers returns every member with live per-status task counts.
func (s *UserService) ListMembers(ctx context.Context) ([]dto.MemberSummary, error) {
	members, err := s.users.ListUsersByRole(ctx, model.RoleMember)
	if err != nil {
		return nil, storeError(err, "User not found")
	}

	out := make([]dto.MemberSummary, 0, len(members))
	for _, m := range members {
		counts, err := s.tasks.GroupCount(ctx, store.TaskFilter{AssignedTo: m.ID}, store.GroupByStatus)
		if err != nil {
			return nil, storeError(err, taskNotFound)
		}
		out = append(out, dto.MemberSummary{
			User:            m,
			PendingTasks:    counts[string(model.StatusPending)],
			InProgressTasks: counts[string(model.StatusInProgress)],
			CompletedTasks:  counts[string(model.StatusCompleted)],
		})
	}
	return out, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	return user, nil
}
