package dto

import "taskflow/model"

// MemberSummary is a member with live task counts.
type MemberSummary struct {
	model.User
	PendingTasks    int64 `json:"pendingTasks"`
	InProgressTasks int64 `json:"inProgressTasks"`
	CompletedTasks  int64 `json:"completedTasks"`
}

type MembersResponse struct {
	UsersWithTaskCounts []MemberSummary `json:"usersWithTaskCounts"`
}
