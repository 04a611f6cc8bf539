package dto

import (
	"encoding/json"
	"time"

	"taskflow/model"
)

// AssignedTo is kept raw so a non-array value can be reported as such.
type CreateTaskRequest struct {
	Title         string             `json:"title" binding:"required"`
	Description   string             `json:"description"`
	Priority      model.TaskPriority `json:"priority" binding:"omitempty,taskpriority"`
	DueDate       *time.Time         `json:"dueDate"`
	AssignedTo    json.RawMessage    `json:"assignedTo"`
	Attachments   []string           `json:"attachments"`
	TodoChecklist []model.TodoItem   `json:"todoChecklist"`
}

type UpdateTaskRequest struct {
	Title         Optional[string]             `json:"title"`
	Description   Optional[string]             `json:"description"`
	Priority      Optional[model.TaskPriority] `json:"priority"`
	DueDate       Optional[time.Time]          `json:"dueDate"`
	AssignedTo    json.RawMessage              `json:"assignedTo"`
	Attachments   Optional[[]string]           `json:"attachments"`
	TodoChecklist Optional[[]model.TodoItem]   `json:"todoChecklist"`
}

type UpdateStatusRequest struct {
	Status Optional[model.TaskStatus] `json:"status"`
}

type UpdateChecklistRequest struct {
	TodoChecklist Optional[[]model.TodoItem] `json:"todoChecklist"`
}

type TaskListQuery struct {
	Status model.TaskStatus `form:"status" binding:"omitempty,taskstatus"`
}

type AssigneeView struct {
	ID              string `json:"_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// TaskView is a task with assignees resolved to user summaries.
type TaskView struct {
	model.Task
	AssignedTo         []AssigneeView `json:"assignedTo"`
	CompletedTodoCount int            `json:"completedTodoCount"`
}

type StatusSummary struct {
	All        int64 `json:"all"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
}

type TaskListResponse struct {
	Tasks         []TaskView    `json:"tasks"`
	StatusSummary StatusSummary `json:"statusSummary"`
}

type DashboardStatistics struct {
	TotalTasks     int64 `json:"totalTasks"`
	PendingTasks   int64 `json:"pendingTasks"`
	CompletedTasks int64 `json:"completedTasks"`
	OverdueTasks   int64 `json:"overdueTasks"`
}

type DashboardCharts struct {
	// keys: Pending, InProgress, Completed, All
	TaskDistribution map[string]int64 `json:"taskDistribution"`
	// keys: Low, Medium, High
	TaskPriorityLevels map[string]int64 `json:"taskPriorityLevels"`
}

type RecentTask struct {
	ID        string             `json:"_id"`
	Title     string             `json:"title"`
	Status    model.TaskStatus   `json:"status"`
	Priority  model.TaskPriority `json:"priority"`
	DueDate   *time.Time         `json:"dueDate,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

type DashboardResponse struct {
	Statistics  DashboardStatistics `json:"statistics"`
	Charts      DashboardCharts     `json:"charts"`
	RecentTasks []RecentTask        `json:"recentTasks"`
}
