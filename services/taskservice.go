package services

import (
	"bytes"
	"context"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"taskflow/apperror"
	"taskflow/dto"
	"taskflow/model"
	"taskflow/store"

	"github.com/google/uuid"
)

const taskNotFound = "Task not found"

type TaskService struct {
	tasks store.TaskStore
	users store.UserStore
	now   func() time.Time
	newID func() string
}

func NewTaskService(tasks store.TaskStore, users store.UserStore) *TaskService {
	return &TaskService{tasks: tasks, users: users, now: time.Now, newID: uuid.NewString}
}

// List returns every task for admins and only assigned tasks for members.
func (s *TaskService) List(ctx context.Context, caller *model.User, status model.TaskStatus) (*dto.TaskListResponse, error) {
	scope := store.TaskFilter{}
	if !caller.IsAdmin() {
		scope.AssignedTo = caller.ID
	}
	return s.list(ctx, scope, status)
}

// MyTasks is List scoped to the caller regardless of role.
func (s *TaskService) MyTasks(ctx context.Context, caller *model.User, status model.TaskStatus) (*dto.TaskListResponse, error) {
	return s.list(ctx, store.TaskFilter{AssignedTo: caller.ID}, status)
}

func (s *TaskService) list(ctx context.Context, scope store.TaskFilter, status model.TaskStatus) (*dto.TaskListResponse, error) {
	if status != "" && !status.Valid() {
		return nil, apperror.InvalidInput("Invalid status filter")
	}

	q := store.TaskQuery{TaskFilter: scope}
	q.Status = status
	tasks, err := s.tasks.ListTasks(ctx, q)
	if err != nil {
		return nil, storeError(err, taskNotFound)
	}
	views, err := s.populate(ctx, tasks)
	if err != nil {
		return nil, err
	}

	summary, err := s.statusSummary(ctx, scope, status)
	if err != nil {
		return nil, err
	}
	return &dto.TaskListResponse{Tasks: views, StatusSummary: summary}, nil
}

// statusSummary counts "all" with the status filter applied, like the task
// list itself. The per-status buckets count the whole role scope.
func (s *TaskService) statusSummary(ctx context.Context, scope store.TaskFilter, status model.TaskStatus) (dto.StatusSummary, error) {
	filtered := scope
	filtered.Status = status
	all, err := s.tasks.CountTasks(ctx, filtered)
	if err != nil {
		return dto.StatusSummary{}, storeError(err, taskNotFound)
	}
	counts, err := s.tasks.GroupCount(ctx, scope, store.GroupByStatus)
	if err != nil {
		return dto.StatusSummary{}, storeError(err, taskNotFound)
	}
	return dto.StatusSummary{
		All:        all,
		Pending:    counts[string(model.StatusPending)],
		InProgress: counts[string(model.StatusInProgress)],
		Completed:  counts[string(model.StatusCompleted)],
	}, nil
}

// populate resolves assignee ids to user summaries. Ids of users that no
// longer exist are dropped.
func (s *TaskService) populate(ctx context.Context, tasks []model.Task) ([]dto.TaskView, error) {
	var ids []string
	for _, t := range tasks {
		for _, id := range t.AssignedTo {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}

	byID := make(map[string]dto.AssigneeView, len(ids))
	if len(ids) > 0 {
		users, err := s.users.GetUsersByIDs(ctx, ids)
		if err != nil {
			return nil, storeError(err, "User not found")
		}
		for _, u := range users {
			byID[u.ID] = dto.AssigneeView{ID: u.ID, Name: u.Name, Email: u.Email, ProfileImageURL: u.ProfileImageURL}
		}
	}

	views := make([]dto.TaskView, 0, len(tasks))
	for _, t := range tasks {
		assignees := make([]dto.AssigneeView, 0, len(t.AssignedTo))
		for _, id := range t.AssignedTo {
			if a, ok := byID[id]; ok {
				assignees = append(assignees, a)
			}
		}
		views = append(views, dto.TaskView{
			Task:               t,
			AssignedTo:         assignees,
			CompletedTodoCount: t.CompletedTodoCount(),
		})
	}
	return views, nil
}

func (s *TaskService) populateOne(ctx context.Context, task *model.Task) (*dto.TaskView, error) {
	views, err := s.populate(ctx, []model.Task{*task})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Get returns a single task. Members may only read tasks assigned to them.
func (s *TaskService) Get(ctx context.Context, caller *model.User, id string) (*dto.TaskView, error) {
	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return nil, storeError(err, taskNotFound)
	}
	if !caller.IsAdmin() && !task.IsAssignedTo(caller.ID) {
		return nil, apperror.Forbidden("Not authorized to view this task")
	}
	return s.populateOne(ctx, task)
}

func (s *TaskService) Create(ctx context.Context, caller *model.User, req dto.CreateTaskRequest) (*model.Task, error) {
	if err := RequireRole(caller, model.RoleAdmin); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.InvalidInput("Title is required")
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, apperror.InvalidInput("Invalid priority")
	}
	assignees, err := parseAssignees(req.AssignedTo)
	if err != nil {
		return nil, err
	}
	if err := validateChecklist(req.TodoChecklist); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	task := &model.Task{
		ID:          s.newID(),
		Title:       title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
		AssignedTo:  assignees,
		CreatedBy:   caller.ID,
		Attachments: nonNil(req.Attachments),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ApplyChecklist(task, req.TodoChecklist)

	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, storeError(err, taskNotFound)
	}
	return task, nil
}

// Update applies the fields present in req. Omitted fields keep their value.
func (s *TaskService) Update(ctx context.Context, caller *model.User, id string, req dto.UpdateTaskRequest) (*model.Task, error) {
	if err := RequireRole(caller, model.RoleAdmin); err != nil {
		return nil, err
	}
	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return nil, storeError(err, taskNotFound)
	}

	if req.Title.Set {
		title := strings.TrimSpace(req.Title.Value)
		if title == "" {
			return nil, apperror.InvalidInput("Title cannot be empty")
		}
		task.Title = title
	}
	if req.Description.Set {
		task.Description = req.Description.Value
	}
	if req.Priority.Set {
		if !req.Priority.Value.Valid() {
			return nil, apperror.InvalidInput("Invalid priority")
		}
		task.Priority = req.Priority.Value
	}
	if req.DueDate.Set {
		if due, ok := req.DueDate.Get(); ok {
			task.DueDate = &due
		} else {
			task.DueDate = nil
		}
	}
	if req.AssignedTo != nil {
		assignees, err := parseAssignees(req.AssignedTo)
		if err != nil {
			return nil, err
		}
		task.AssignedTo = assignees
	}
	if req.Attachments.Set {
		task.Attachments = nonNil(req.Attachments.Value)
	}
	if req.TodoChecklist.Set {
		if err := validateChecklist(req.TodoChecklist.Value); err != nil {
			return nil, err
		}
		ApplyChecklist(task, req.TodoChecklist.Value)
	}

	task.UpdatedAt = s.now().UTC()
	if err := s.tasks.UpdateTask(ctx, task); err != nil {
		return nil, storeError(err, taskNotFound)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, caller *model.User, id string) error {
	if err := RequireRole(caller, model.RoleAdmin); err != nil {
		return err
	}
	return storeError(s.tasks.DeleteTask(ctx, id), taskNotFound)
}

// UpdateStatus sets the status directly through SetStatus.
func (s *TaskService) UpdateStatus(ctx context.Context, caller *model.User, id string, req dto.UpdateStatusRequest) (*model.Task, error) {
	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return nil, storeError(err, taskNotFound)
	}
	if err := CanProgress(caller, task); err != nil {
		return nil, err
	}

	if req.Status.Set {
		status, ok := req.Status.Get()
		if !ok || !status.Valid() {
			return nil, apperror.InvalidInput("Invalid status")
		}
		if err := SetStatus(task, status); err != nil {
			return nil, err
		}
	} else if task.Status == model.StatusCompleted {
		MarkCompleted(task)
	}

	task.UpdatedAt = s.now().UTC()
	if err := s.tasks.UpdateTask(ctx, task); err != nil {
		return nil, storeError(err, taskNotFound)
	}
	return task, nil
}

// UpdateChecklist replaces the checklist and re-derives progress and status.
func (s *TaskService) UpdateChecklist(ctx context.Context, caller *model.User, id string, req dto.UpdateChecklistRequest) (*dto.TaskView, error) {
	items, ok := req.TodoChecklist.Get()
	if !ok {
		return nil, apperror.InvalidInput("todoChecklist must be an array")
	}
	if err := validateChecklist(items); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return nil, storeError(err, taskNotFound)
	}
	if err := CanProgress(caller, task); err != nil {
		return nil, err
	}

	ApplyChecklist(task, items)
	task.UpdatedAt = s.now().UTC()
	if err := s.tasks.UpdateTask(ctx, task); err != nil {
		return nil, storeError(err, taskNotFound)
	}
	return s.populateOne(ctx, task)
}

// parseAssignees accepts only a JSON array of non-empty user ids.
func parseAssignees(raw json.RawMessage) ([]string, error) {
	invalid := apperror.InvalidInput("assignedTo must be an array of user IDs")
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, invalid
	}
	var ids []string
	if err := json.Unmarshal(trimmed, &ids); err != nil {
		return nil, invalid
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			return nil, invalid
		}
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out, nil
}

func validateChecklist(items []model.TodoItem) error {
	for _, item := range items {
		if strings.TrimSpace(item.Text) == "" {
			return apperror.InvalidInput("Checklist items require text")
		}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
