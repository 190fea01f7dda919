package model

import "time"

// Actions recorded against tasks.
const (
	ActionTaskCreated = "Task created"
	ActionTaskUpdated = "Task updated"
	ActionTaskDeleted = "Task deleted"
)

type ActivityEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	TaskID    *int64    `json:"task_id,omitempty"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
