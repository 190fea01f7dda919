package db

import (
	"context"
	"fmt"

	"github.com/GokulM8/taskflow/internal/model"
)

const (
	defaultActivityLimit = 10
	maxActivityLimit     = 100
)

// AppendActivity records an action for userID, optionally tied to a task.
func (db *DB) AppendActivity(ctx context.Context, userID int64, action string, taskID *int64) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO activity_logs (user_id, task_id, action, created_at)
		VALUES (?, ?, ?, ?)`,
		userID, taskID, action, db.timestamp())
	if err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}
	return nil
}

// logActivity is the best-effort form of AppendActivity used after a task
// write has already succeeded. Failures are reported on the logger and
// never returned.
func (db *DB) logActivity(ctx context.Context, userID int64, action string, taskID *int64) {
	if err := db.AppendActivity(ctx, userID, action, taskID); err != nil {
		db.logger.Printf("activity log: user %d %q: %v", userID, action, err)
	}
}

// RecentActivity returns userID's most recent activity, newest first.
// A non-positive limit selects the default.
func (db *DB) RecentActivity(ctx context.Context, userID int64, limit int) ([]model.ActivityEntry, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, task_id, action, created_at
		FROM activity_logs
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []model.ActivityEntry{}
	for rows.Next() {
		var e model.ActivityEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.TaskID, &e.Action, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
