package services

import (
	"slices"

	"taskflow/apperror"
	"taskflow/model"
)

// DeriveProgress returns the rounded percentage of completed items and the
// status that goes with it. An empty checklist is 0% and Pending.
func DeriveProgress(items []model.TodoItem) (int, model.TaskStatus) {
	total := len(items)
	if total == 0 {
		return 0, model.StatusPending
	}
	done := 0
	for _, item := range items {
		if item.Completed {
			done++
		}
	}
	// round half up on integers: floor(100*done/total + 1/2)
	progress := (200*done + total) / (2 * total)
	return progress, StatusForProgress(progress)
}

func StatusForProgress(progress int) model.TaskStatus {
	switch {
	case progress >= 100:
		return model.StatusCompleted
	case progress > 0:
		return model.StatusInProgress
	default:
		return model.StatusPending
	}
}

// ApplyChecklist replaces the checklist and recomputes progress and status.
func ApplyChecklist(task *model.Task, items []model.TodoItem) {
	task.TodoChecklist = slices.Clone(items)
	if task.TodoChecklist == nil {
		task.TodoChecklist = []model.TodoItem{}
	}
	task.Progress, task.Status = DeriveProgress(task.TodoChecklist)
}

// MarkCompleted checks every item and forces the task to Completed.
func MarkCompleted(task *model.Task) {
	for i := range task.TodoChecklist {
		task.TodoChecklist[i].Completed = true
	}
	task.Progress = 100
	task.Status = model.StatusCompleted
}

// SetStatus applies a directly requested status. Completed checks off every
// item; any other status must be the one the checklist already derives.
func SetStatus(task *model.Task, status model.TaskStatus) error {
	if status == model.StatusCompleted {
		MarkCompleted(task)
		return nil
	}
	progress, derived := DeriveProgress(task.TodoChecklist)
	if status != derived {
		return apperror.InvalidInput("Status does not match checklist progress, update the checklist instead")
	}
	task.Progress, task.Status = progress, derived
	return nil
}

// CanProgress allows admins and assignees to change status and checklist.
func CanProgress(user *model.User, task *model.Task) error {
	if user.IsAdmin() || task.IsAssignedTo(user.ID) {
		return nil
	}
	return apperror.Forbidden("Not authorized to update this task")
}
