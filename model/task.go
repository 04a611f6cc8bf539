package model

import (
	"slices"
	"time"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// TaskStatuses lists every status in display order.
var TaskStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}

func (s TaskStatus) Valid() bool {
	return slices.Contains(TaskStatuses, s)
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

func (p TaskPriority) Valid() bool {
	return slices.Contains(TaskPriorities, p)
}

type TodoItem struct {
	Text      string `json:"text" bson:"text" firestore:"text"`
	Completed bool   `json:"completed" bson:"completed" firestore:"completed"`
}

// Task is the stored task document. Progress and Status are derived from
// TodoChecklist; Version guards read-modify-write updates.
type Task struct {
	ID            string       `json:"_id" bson:"_id" firestore:"id"`
	Title         string       `json:"title" bson:"title" firestore:"title"`
	Description   string       `json:"description" bson:"description" firestore:"description"`
	Priority      TaskPriority `json:"priority" bson:"priority" firestore:"priority"`
	Status        TaskStatus   `json:"status" bson:"status" firestore:"status"`
	DueDate       *time.Time   `json:"dueDate,omitempty" bson:"dueDate,omitempty" firestore:"dueDate,omitempty"`
	AssignedTo    []string     `json:"assignedTo" bson:"assignedTo" firestore:"assignedTo"`
	CreatedBy     string       `json:"createdBy,omitempty" bson:"createdBy,omitempty" firestore:"createdBy,omitempty"`
	Attachments   []string     `json:"attachments" bson:"attachments" firestore:"attachments"`
	TodoChecklist []TodoItem   `json:"todoChecklist" bson:"todoChecklist" firestore:"todoChecklist"`
	Progress      int          `json:"progress" bson:"progress" firestore:"progress"`
	Version       int64        `json:"version" bson:"version" firestore:"version"`
	CreatedAt     time.Time    `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

func (t *Task) IsAssignedTo(userID string) bool {
	return slices.Contains(t.AssignedTo, userID)
}

// CompletedTodoCount counts checked checklist items.
func (t *Task) CompletedTodoCount() int {
	n := 0
	for _, item := range t.TodoChecklist {
		if item.Completed {
			n++
		}
	}
	return n
}

// IsOverdue reports whether the task is unfinished past its due date.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status != StatusCompleted && t.DueDate != nil && t.DueDate.Before(now)
}

// Clone returns a deep copy so callers can mutate slices safely.
func (t Task) Clone() Task {
	out := t
	out.AssignedTo = slices.Clone(t.AssignedTo)
	out.Attachments = slices.Clone(t.Attachments)
	out.TodoChecklist = slices.Clone(t.TodoChecklist)
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	return out
}
