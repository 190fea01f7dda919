package model

import "time"

// RecentTaskLimit is how many tasks the dashboard lists.
const RecentTaskLimit = 5

// Dashboard aggregates a user's projects and tasks.
type Dashboard struct {
	TotalProjects int          `json:"total_projects"`
	TotalTasks    int          `json:"total_tasks"`
	Todo          int          `json:"todo"`
	InProgress    int          `json:"in_progress"`
	Completed     int          `json:"completed"`
	RecentTasks   []RecentTask `json:"recent_tasks"`
	// Weekday counts completed tasks by the weekday they were created on,
	// over all time. Index 0 is Sunday.
	Weekday [7]int `json:"weekday"`
}

type RecentTask struct {
	ID           int64     `json:"id"`
	ProjectTitle string    `json:"project_title"`
	Title        string    `json:"title"`
	Status       Status    `json:"status"`
	Priority     Priority  `json:"priority"`
	DueDate      *string   `json:"due_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
