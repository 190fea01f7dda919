package model

import (
	"strings"
	"time"
)

type Project struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectSummary is a project row from a listing, with its task count.
type ProjectSummary struct {
	Project
	TaskCount int `json:"task_count"`
}

// ProjectUpdate is a partial update; nil fields are left unchanged.
type ProjectUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *Status `json:"status"`
}

func (u ProjectUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil
}

func (u *ProjectUpdate) Normalize() error {
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
	return nil
}
