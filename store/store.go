// Package store defines the credential and task persistence contracts and
// their document-database backends.
package store

import (
	"context"
	"errors"
	"time"

	"taskflow/model"
)

var (
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a unique field (user email) is taken.
	ErrDuplicate = errors.New("duplicate document")
	// ErrVersionConflict is returned by UpdateTask when the stored version
	// no longer matches the one the caller read.
	ErrVersionConflict = errors.New("version conflict")
)

// UserStore persists user records.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// GetUsersByIDs returns the users that exist, in no particular order.
	GetUsersByIDs(ctx context.Context, ids []string) ([]model.User, error)
	ListUsersByRole(ctx context.Context, role model.Role) ([]model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
}

// TaskStore persists task records.
type TaskStore interface {
	CreateTask(ctx context.Context, task *model.Task) error
	GetTask(ctx context.Context, id string) (*model.Task, error)
	ListTasks(ctx context.Context, q TaskQuery) ([]model.Task, error)
	CountTasks(ctx context.Context, f TaskFilter) (int64, error)
	// GroupCount counts tasks matching f grouped by field. Values with no
	// tasks may be absent from the result.
	GroupCount(ctx context.Context, f TaskFilter, field GroupField) (map[string]int64, error)
	// UpdateTask replaces the task if its stored version equals task.Version
	// and bumps task.Version on success.
	UpdateTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, id string) error
}

// Store bundles both collections behind one handle.
type Store interface {
	UserStore
	TaskStore
	Close(ctx context.Context) error
}

type GroupField string

const (
	GroupByStatus   GroupField = "status"
	GroupByPriority GroupField = "priority"
)

// TaskFilter narrows a task query. Zero fields do not filter.
type TaskFilter struct {
	AssignedTo string
	Status     model.TaskStatus
	Priority   model.TaskPriority
	// OverdueAt selects unfinished tasks whose due date is before it.
	OverdueAt time.Time
}

// Matches applies the filter to a single task in memory.
func (f TaskFilter) Matches(t *model.Task) bool {
	if f.AssignedTo != "" && !t.IsAssignedTo(f.AssignedTo) {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if !f.OverdueAt.IsZero() && !t.IsOverdue(f.OverdueAt) {
		return false
	}
	return true
}

// TaskQuery is a filtered listing ordered by creation time, newest first.
type TaskQuery struct {
	TaskFilter
	Limit int
}

func groupValue(t *model.Task, field GroupField) string {
	switch field {
	case GroupByPriority:
		return string(t.Priority)
	default:
		return string(t.Status)
	}
}
