package services

import (
	"context"
	"strings"
	"time"

	"taskflow/dto"
	"taskflow/model"
	"taskflow/store"
)

const recentTaskLimit = 10

// DashboardService aggregates task counts for the dashboards. Nothing is
// cached; every call queries the store.
type DashboardService struct {
	tasks store.TaskStore
	now   func() time.Time
}

func NewDashboardService(tasks store.TaskStore) *DashboardService {
	return &DashboardService{tasks: tasks, now: time.Now}
}

func (s *DashboardService) GlobalSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	return s.summary(ctx, store.TaskFilter{})
}

func (s *DashboardService) UserSummary(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	return s.summary(ctx, store.TaskFilter{AssignedTo: userID})
}

func (s *DashboardService) summary(ctx context.Context, scope store.TaskFilter) (*dto.DashboardResponse, error) {
	total, err := s.tasks.CountTasks(ctx, scope)
	if err != nil {
		return nil, storeError(err, taskNotFound)
	}

	overdueFilter := scope
	overdueFilter.OverdueAt = s.now().UTC()
	overdue, err := s.tasks.CountTasks(ctx, overdueFilter)
	if err != nil {
		return nil, storeError(err, taskNotFound)
	}

	byStatus, err := s.tasks.GroupCount(ctx, scope, store.GroupByStatus)
	if err != nil {
		return nil, storeError(err, taskNotFound)
	}
	byPriority, err := s.tasks.GroupCount(ctx, scope, store.GroupByPriority)
	if err != nil {
		return nil, storeError(err, taskNotFound)
	}

	recent, err := s.tasks.ListTasks(ctx, store.TaskQuery{TaskFilter: scope, Limit: recentTaskLimit})
	if err != nil {
		return nil, storeError(err, taskNotFound)
	}

	distribution := make(map[string]int64, len(model.TaskStatuses)+1)
	for _, status := range model.TaskStatuses {
		// "In Progress" is keyed as InProgress
		distribution[strings.ReplaceAll(string(status), " ", "")] = byStatus[string(status)]
	}
	distribution["All"] = total

	priorities := make(map[string]int64, len(model.TaskPriorities))
	for _, p := range model.TaskPriorities {
		priorities[string(p)] = byPriority[string(p)]
	}

	recentTasks := make([]dto.RecentTask, 0, len(recent))
	for _, t := range recent {
		recentTasks = append(recentTasks, dto.RecentTask{
			ID:        t.ID,
			Title:     t.Title,
			Status:    t.Status,
			Priority:  t.Priority,
			DueDate:   t.DueDate,
			CreatedAt: t.CreatedAt,
		})
	}

	return &dto.DashboardResponse{
		Statistics: dto.DashboardStatistics{
			TotalTasks:     total,
			PendingTasks:   byStatus[string(model.StatusPending)],
			CompletedTasks: byStatus[string(model.StatusCompleted)],
			OverdueTasks:   overdue,
		},
		Charts: dto.DashboardCharts{
			TaskDistribution:   distribution,
			TaskPriorityLevels: priorities,
		},
		RecentTasks: recentTasks,
	}, nil
}
