package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/GokulM8/taskflow/internal/model"
)

// Dashboard computes userID's dashboard inside one transaction so
// the counts, recent tasks and histogram describe the same snapshot.
func (db *DB) Dashboard(ctx context.Context, userID int64) (*model.Dashboard, error) {
	d := &model.Dashboard{RecentTasks: []model.RecentTask{}}

	err := db.withTx(ctx, nil, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE user_id = ?`, userID).
			Scan(&d.TotalProjects)
		if err != nil {
			return fmt.Errorf("failed to count projects: %w", err)
		}

		if err := countTasksByStatus(ctx, tx, userID, d); err != nil {
			return err
		}

		if d.RecentTasks, err = recentTasks(ctx, tx, userID); err != nil {
			return err
		}

		d.Weekday, err = weekdayHistogram(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func countTasksByStatus(ctx context.Context, tx *sql.Tx, userID int64, d *model.Dashboard) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT t.status, COUNT(*)
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE p.user_id = ?
		GROUP BY t.status`, userID)
	if err != nil {
		return fmt.Errorf("failed to count statuses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return fmt.Errorf("failed to scan status count: %w", err)
		}
		d.TotalTasks += count
		switch model.Status(status) {
		case model.StatusTodo:
			d.Todo = count
		case model.StatusInProgress:
			d.InProgress = count
		case model.StatusCompleted:
			d.Completed = count
		}
	}
	return rows.Err()
}

func recentTasks(ctx context.Context, tx *sql.Tx, userID int64) ([]model.RecentTask, error) {
	tasks, err := queryTasks(ctx, tx, taskSelect+`
		WHERE p.user_id = ?
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT ?`, userID, model.RecentTaskLimit)
	if err != nil {
		return nil, err
	}

	recent := make([]model.RecentTask, 0, len(tasks))
	for _, t := range tasks {
		recent = append(recent, model.RecentTask{
			ID:           t.ID,
			ProjectTitle: t.ProjectTitle,
			Title:        t.Title,
			Status:       t.Status,
			Priority:     t.Priority,
			DueDate:      t.DueDate,
			CreatedAt:    t.CreatedAt,
		})
	}
	return recent, nil
}

// weekdayHistogram counts completed tasks by the weekday of their creation
// time across the whole history. It is not a rolling seven-day window:
// a task completed months ago still lands in its weekday's bucket.
func weekdayHistogram(ctx context.Context, tx *sql.Tx, userID int64) ([7]int, error) {
	var buckets [7]int

	rows, err := tx.QueryContext(ctx, `
		SELECT CAST(strftime('%w', t.created_at) AS INTEGER) AS weekday, COUNT(*)
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE p.user_id = ? AND t.status = ?
		GROUP BY weekday`, userID, model.StatusCompleted)
	if err != nil {
		return buckets, fmt.Errorf("failed to query weekday histogram: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var day sql.NullInt64
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return buckets, fmt.Errorf("failed to scan weekday count: %w", err)
		}
		if !day.Valid || day.Int64 < 0 || day.Int64 > 6 {
			return buckets, fmt.Errorf("weekday histogram: unparseable created_at bucket %v", day)
		}
		buckets[day.Int64] = count
	}
	return buckets, rows.Err()
}
