package model

import (
	"strings"
	"time"
)

// DueDateLayout is the calendar-date format used for task due dates.
const DueDateLayout = "2006-01-02"

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists the canonical status vocabulary in workflow order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusCompleted}

// IsValid reports whether s is one of the canonical statuses.
// Legacy spellings such as "done" or "progress" are rejected.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID           int64     `json:"id"`
	ProjectID    int64     `json:"project_id"`
	ProjectTitle string    `json:"project_title,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       Status    `json:"status"`
	Priority     Priority  `json:"priority"`
	DueDate      *string   `json:"due_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewTask holds the caller-supplied fields for a task insert.
// Zero values fall back to the defaults (medium priority, no due date).
type NewTask struct {
	ProjectID   int64
	Title       string
	Description string
	Priority    Priority
	DueDate     string
}

// Normalize trims the text fields, applies defaults and validates the result.
func (n *NewTask) Normalize() error {
	n.Title = strings.TrimSpace(n.Title)
	n.Description = strings.TrimSpace(n.Description)
	n.DueDate = strings.TrimSpace(n.DueDate)
	if n.Title == "" {
		return Invalid("title", "is required")
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	if !n.Priority.IsValid() {
		return Invalid("priority", "must be one of low, medium, high")
	}
	if n.DueDate != "" {
		if err := ValidateDueDate(n.DueDate); err != nil {
			return err
		}
	}
	return nil
}

// TaskUpdate is a partial update; nil fields are left unchanged.
// A DueDate pointing at an empty string clears the due date.
type TaskUpdate struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Status      *Status   `json:"status"`
	Priority    *Priority `json:"priority"`
	DueDate     *string   `json:"due_date"`
}

// Empty reports whether the update changes nothing.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil && u.Priority == nil && u.DueDate == nil
}

func (u *TaskUpdate) Normalize() error {
	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if title == "" {
			return Invalid("title", "is required")
		}
		u.Title = &title
	}
	if u.Description != nil {
		desc := strings.TrimSpace(*u.Description)
		u.Description = &desc
	}
	if u.Status != nil && !u.Status.IsValid() {
		return Invalid("status", "must be one of todo, in_progress, completed")
	}
	if u.Priority != nil && !u.Priority.IsValid() {
		return Invalid("priority", "must be one of low, medium, high")
	}
	if u.DueDate != nil {
		due := strings.TrimSpace(*u.DueDate)
		if due != "" {
			if err := ValidateDueDate(due); err != nil {
				return err
			}
		}
		u.DueDate = &due
	}
	return nil
}

// TaskFilter narrows a task listing. All set fields must match.
type TaskFilter struct {
	ProjectID int64
	Status    *Status
	Priority  *Priority
	// Search matches anywhere in the title, ignoring case.
	Search string
}

func (f TaskFilter) Validate() error {
	if f.Status != nil && !f.Status.IsValid() {
		return Invalid("status", "must be one of todo, in_progress, completed")
	}
	if f.Priority != nil && !f.Priority.IsValid() {
		return Invalid("priority", "must be one of low, medium, high")
	}
	return nil
}

func ValidateDueDate(s string) error {
	if _, err := time.Parse(DueDateLayout, s); err != nil {
		return Invalid("due_date", "must be a date in YYYY-MM-DD form")
	}
	return nil
}
