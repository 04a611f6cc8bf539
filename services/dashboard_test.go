package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"taskflow/dto"
	"taskflow/model"
)

func TestDashboardSummaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	past := testNow.Add(-time.Hour)
	raw, _ := json.Marshal([]string{"member"})
	if _, err := f.tasks.Create(ctx, f.admin, dto.CreateTaskRequest{
		Title: "late", Priority: model.PriorityHigh, DueDate: &past, AssignedTo: raw,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	// completed tasks are never overdue
	if _, err := f.tasks.Create(ctx, f.admin, dto.CreateTaskRequest{
		Title: "late but done", Priority: model.PriorityLow, DueDate: &past, AssignedTo: raw,
		TodoChecklist: []model.TodoItem{{Text: "a", Completed: true}},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	f.createTask(t, "other", []string{"other"}, []model.TodoItem{{Text: "a", Completed: true}, {Text: "b"}})

	global, err := f.dash.GlobalSummary(ctx)
	if err != nil {
		t.Fatalf("global summary: %v", err)
	}
	wantStats := dto.DashboardStatistics{TotalTasks: 3, PendingTasks: 1, CompletedTasks: 1, OverdueTasks: 1}
	if global.Statistics != wantStats {
		t.Fatalf("expected %+v, got %+v", wantStats, global.Statistics)
	}
	dist := global.Charts.TaskDistribution
	if dist["Pending"] != 1 || dist["InProgress"] != 1 || dist["Completed"] != 1 || dist["All"] != 3 {
		t.Fatalf("unexpected distribution %v", dist)
	}
	prio := global.Charts.TaskPriorityLevels
	if prio["Low"] != 1 || prio["Medium"] != 1 || prio["High"] != 1 {
		t.Fatalf("unexpected priorities %v", prio)
	}
	if len(global.RecentTasks) != 3 || global.RecentTasks[0].Title != "other" {
		t.Fatalf("expected newest first, got %+v", global.RecentTasks)
	}

	mine, err := f.dash.UserSummary(ctx, "member")
	if err != nil {
		t.Fatalf("user summary: %v", err)
	}
	if mine.Statistics.TotalTasks != 2 || mine.Charts.TaskDistribution["InProgress"] != 0 {
		t.Fatalf("user summary not scoped: %+v", mine.Statistics)
	}
	if _, ok := mine.Charts.TaskPriorityLevels["Medium"]; !ok {
		t.Fatal("every priority key must be present")
	}
}

func TestDashboardRecentTasksLimit(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 12; i++ {
		f.createTask(t, fmt.Sprintf("task %d", i), nil, nil)
	}
	summary, err := f.dash.GlobalSummary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summary.RecentTasks) != recentTaskLimit || summary.RecentTasks[0].Title != "task 11" {
		t.Fatalf("expected 10 newest tasks, got %d starting %q", len(summary.RecentTasks), summary.RecentTasks[0].Title)
	}
}
