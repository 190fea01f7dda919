package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/GokulM8/taskflow/internal/model"
)

// taskSelect joins every task to its project so that ownership is checked
// against projects.user_id; tasks never store an owner themselves.
const taskSelect = `
	SELECT t.id, t.project_id, p.title, t.title, t.description, t.status, t.priority, t.due_date, t.created_at
	FROM tasks t
	JOIN projects p ON p.id = t.project_id`

// CreateTask inserts a task under a project owned by userID and records
// "Task created" in the activity log.
func (db *DB) CreateTask(ctx context.Context, userID int64, nt model.NewTask) (*model.Task, error) {
	if _, err := db.GetProject(ctx, nt.ProjectID, userID); err != nil {
		return nil, err
	}
	if err := nt.Normalize(); err != nil {
		return nil, err
	}

	var due *string
	if nt.DueDate != "" {
		due = &nt.DueDate
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO tasks (project_id, title, description, status, priority, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		nt.ProjectID, nt.Title, nt.Description, model.StatusTodo, nt.Priority, due, db.timestamp())
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read task id: %w", err)
	}

	db.logActivity(ctx, userID, model.ActionTaskCreated, &id)
	return db.GetTask(ctx, id, userID)
}

// GetTask retrieves a task whose project is owned by userID.
func (db *DB) GetTask(ctx context.Context, taskID, userID int64) (*model.Task, error) {
	row := db.QueryRowContext(ctx, taskSelect+` WHERE t.id = ? AND p.user_id = ?`, taskID, userID)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// UpdateTask applies a partial update to a task whose project is owned by
// userID and records "Task updated".
func (db *DB) UpdateTask(ctx context.Context, taskID, userID int64, upd model.TaskUpdate) (*model.Task, error) {
	if err := upd.Normalize(); err != nil {
		return nil, err
	}
	if _, err := db.GetTask(ctx, taskID, userID); err != nil {
		return nil, err
	}

	if !upd.Empty() {
		sets := []string{}
		args := []any{}
		if upd.Title != nil {
			sets = append(sets, `title = ?`)
			args = append(args, *upd.Title)
		}
		if upd.Description != nil {
			sets = append(sets, `description = ?`)
			args = append(args, *upd.Description)
		}
		if upd.Status != nil {
			sets = append(sets, `status = ?`)
			args = append(args, *upd.Status)
		}
		if upd.Priority != nil {
			sets = append(sets, `priority = ?`)
			args = append(args, *upd.Priority)
		}
		if upd.DueDate != nil {
			sets = append(sets, `due_date = ?`)
			if *upd.DueDate == "" {
				args = append(args, nil)
			} else {
				args = append(args, *upd.DueDate)
			}
		}
		args = append(args, taskID, userID)

		// Ownership is re-checked in the statement itself.
		result, err := db.ExecContext(ctx, `
			UPDATE tasks SET `+strings.Join(sets, ", ")+`
			WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE user_id = ?)`,
			args...)
		if err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return nil, model.ErrNotFound
		}
	}

	db.logActivity(ctx, userID, model.ActionTaskUpdated, &taskID)
	return db.GetTask(ctx, taskID, userID)
}

// DeleteTask removes a task whose project is owned by userID and records
// "Task deleted". Earlier log entries for the task keep their rows with the
// task reference cleared.
func (db *DB) DeleteTask(ctx context.Context, taskID, userID int64) error {
	result, err := db.ExecContext(ctx, `
		DELETE FROM tasks
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE user_id = ?)`,
		taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return model.ErrNotFound
	}

	db.logActivity(ctx, userID, model.ActionTaskDeleted, nil)
	return nil
}

// ListTasks returns tasks in userID's projects matching every set filter,
// newest first.
func (db *DB) ListTasks(ctx context.Context, userID int64, f model.TaskFilter) ([]model.Task, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	query := taskSelect + ` WHERE p.user_id = ?`
	args := []any{userID}

	if f.ProjectID != 0 {
		query += ` AND t.project_id = ?`
		args = append(args, f.ProjectID)
	}
	if f.Status != nil {
		query += ` AND t.status = ?`
		args = append(args, *f.Status)
	}
	if f.Priority != nil {
		query += ` AND t.priority = ?`
		args = append(args, *f.Priority)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		// instr keeps % and _ in the search text literal.
		query += ` AND instr(lower(t.title), lower(?)) > 0`
		args = append(args, search)
	}
	query += ` ORDER BY t.created_at DESC, t.id DESC`

	return queryTasks(ctx, db, query, args...)
}

func queryTasks(ctx context.Context, q querier, query string, args ...any) ([]model.Task, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*model.Task, error) {
	task := &model.Task{}
	var due sql.NullString
	err := s.Scan(
		&task.ID, &task.ProjectID, &task.ProjectTitle, &task.Title, &task.Description,
		&task.Status, &task.Priority, &due, &task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if due.Valid {
		task.DueDate = &due.String
	}
	return task, nil
}
