package db

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GokulM8/taskflow/internal/model"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	if err := db.Init(); err != nil {
		t.Fatalf("failed to init db: %v", err)
	}

	// Each timestamp is one minute after the previous one so that
	// creation order is unambiguous.
	clock := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	db.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	db.SetLogger(log.New(io.Discard, "", 0))

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// setClock pins the next timestamps to at.
func setClock(db *DB, at time.Time) {
	db.now = func() time.Time { return at }
}

func createUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()
	u, err := db.CreateUser(context.Background(), strings.Split(email, "@")[0], email, "hash:"+email)
	if err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return u
}

func createProject(t *testing.T, db *DB, userID int64, title string) *model.Project {
	t.Helper()
	p, err := db.CreateProject(context.Background(), userID, title, "")
	if err != nil {
		t.Fatalf("failed to create project %q: %v", title, err)
	}
	return p
}

func createTask(t *testing.T, db *DB, userID, projectID int64, title string) *model.Task {
	t.Helper()
	task, err := db.CreateTask(context.Background(), userID, model.NewTask{ProjectID: projectID, Title: title})
	if err != nil {
		t.Fatalf("failed to create task %q: %v", title, err)
	}
	return task
}

func setStatus(t *testing.T, db *DB, userID, taskID int64, status model.Status) {
	t.Helper()
	if _, err := db.UpdateTask(context.Background(), taskID, userID, model.TaskUpdate{Status: &status}); err != nil {
		t.Fatalf("failed to set status: %v", err)
	}
}

func countRows(t *testing.T, db *DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return n
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Should create parent directories
	if _, err := os.Stat(filepath.Dir(path)); os.IsNotExist(err) {
		t.Error("expected directory to be created")
	}
}

func TestOpen_EnforcesForeignKeys(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Exec(`INSERT INTO projects (user_id, title, created_at) VALUES (999, 'orphan', '2024-01-01 00:00:00')`)
	if err == nil {
		t.Error("expected foreign key violation for unknown user")
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("failed to get default path: %v", err)
	}

	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %q", path)
	}

	if !strings.HasSuffix(path, filepath.Join(".taskflow", "taskflow.db")) {
		t.Errorf("expected path to end with .taskflow/taskflow.db, got %q", path)
	}
}

func TestInit_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
}

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u, err := db.CreateUser(ctx, "Alice", "  A@X.com ", "opaque")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if u.Email != "a@x.com" {
		t.Errorf("email = %q, want normalized a@x.com", u.Email)
	}
	if u.PasswordHash != "opaque" {
		t.Errorf("password hash = %q, want stored as given", u.PasswordHash)
	}

	got, err := db.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("failed to get user by email: %v", err)
	}
	if got.ID != u.ID || got.Name != "Alice" {
		t.Errorf("got %+v, want %+v", got, u)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	orig, err := db.CreateUser(ctx, "Alice", "a@x.com", "first")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	_, err = db.CreateUser(ctx, "Mallory", "A@x.com", "second")
	if err != model.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	got, err := db.GetUser(ctx, orig.ID)
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	if got.Name != "Alice" || got.PasswordHash != "first" {
		t.Errorf("original record changed: %+v", got)
	}
	if n := countRows(t, db, `SELECT COUNT(*) FROM users`); n != 1 {
		t.Errorf("users = %d, want 1", n)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.GetUser(context.Background(), 42); err != model.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := db.GetUserByEmail(context.Background(), "nobody@x.com"); err != model.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
