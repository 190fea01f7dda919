package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/GokulM8/taskflow/internal/model"
)

const projectColumns = `id, user_id, title, description, status, created_at`

// CreateProject inserts a project owned by userID with status todo.
func (db *DB) CreateProject(ctx context.Context, userID int64, title, description string) (*model.Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, model.Invalid("title", "is required")
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO projects (user_id, title, description, status, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		userID, title, strings.TrimSpace(description), model.StatusTodo, db.timestamp())
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read project id: %w", err)
	}
	return db.GetProject(ctx, id, userID)
}

// GetProject retrieves a project owned by userID.
func (db *DB) GetProject(ctx context.Context, projectID, userID int64) (*model.Project, error) {
	return getProject(ctx, db, projectID, userID)
}

func getProject(ctx context.Context, q querier, projectID, userID int64) (*model.Project, error) {
	p := &model.Project{}
	err := q.QueryRowContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects WHERE id = ? AND user_id = ?`, projectID, userID).
		Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Status, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// UpdateProject applies a partial update to a project owned by userID.
// Concurrent updates are last-write-wins.
func (db *DB) UpdateProject(ctx context.Context, projectID, userID int64, upd model.ProjectUpdate) (*model.Project, error) {
	if err := upd.Normalize(); err != nil {
		return nil, err
	}
	if upd.Empty() {
		return db.GetProject(ctx, projectID, userID)
	}

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
	args = append(args, projectID, userID)

	result, err := db.ExecContext(ctx,
		`UPDATE projects SET `+strings.Join(sets, ", ")+` WHERE id = ? AND user_id = ?`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, model.ErrNotFound
	}
	return db.GetProject(ctx, projectID, userID)
}

// DeleteProject removes a project owned by userID together with its tasks.
// Both deletes share one transaction, so a reader never sees the tasks gone
// while the project remains, or the reverse.
func (db *DB) DeleteProject(ctx context.Context, projectID, userID int64) error {
	return db.withTx(ctx, nil, func(tx *sql.Tx) error {
		if _, err := getProject(ctx, tx, projectID, userID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, projectID); err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND user_id = ?`, projectID, userID)
		if err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}

// ListProjects returns userID's projects, newest first, each with its task count.
func (db *DB) ListProjects(ctx context.Context, userID int64) ([]model.ProjectSummary, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT p.id, p.user_id, p.title, p.description, p.status, p.created_at, COUNT(t.id)
		FROM projects p
		LEFT JOIN tasks t ON t.project_id = p.id
		WHERE p.user_id = ?
		GROUP BY p.id
		ORDER BY p.created_at DESC, p.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	projects := []model.ProjectSummary{}
	for rows.Next() {
		var p model.ProjectSummary
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Status, &p.CreatedAt, &p.TaskCount); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
