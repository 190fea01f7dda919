package db

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"github.com/GokulM8/taskflow/internal/model"
)

func TestAppendActivity(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "a@x.com")

	if err := db.AppendActivity(ctx, alice.ID, "First", nil); err != nil {
		t.Fatalf("failed to append activity: %v", err)
	}
	if err := db.AppendActivity(ctx, alice.ID, "Second", nil); err != nil {
		t.Fatalf("failed to append activity: %v", err)
	}

	entries, err := db.RecentActivity(ctx, alice.ID, 0)
	if err != nil {
		t.Fatalf("failed to get activity: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Newest first
	if entries[0].Action != "Second" || entries[1].Action != "First" {
		t.Errorf("order = [%q %q], want [Second First]", entries[0].Action, entries[1].Action)
	}
}

func TestRecentActivity_Limit(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "a@x.com")
	bob := createUser(t, db, "b@x.com")

	for i := 0; i < 15; i++ {
		_ = db.AppendActivity(ctx, alice.ID, "tick", nil)
	}
	_ = db.AppendActivity(ctx, bob.ID, "bob's", nil)

	tests := []struct {
		limit int
		want  int
	}{
		{0, defaultActivityLimit},
		{-1, defaultActivityLimit},
		{3, 3},
		{1000, 15},
	}
	for _, tt := range tests {
		entries, err := db.RecentActivity(ctx, alice.ID, tt.limit)
		if err != nil {
			t.Fatalf("limit %d: %v", tt.limit, err)
		}
		if len(entries) != tt.want {
			t.Errorf("limit %d: got %d entries, want %d", tt.limit, len(entries), tt.want)
		}
		for _, e := range entries {
			if e.UserID != alice.ID {
				t.Errorf("entry for user %d leaked into alice's feed", e.UserID)
			}
		}
	}
}

func TestActivityFailureDoesNotFailTaskWrites(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	var logs bytes.Buffer
	db.SetLogger(log.New(&logs, "", 0))

	alice := createUser(t, db, "a@x.com")
	p := createProject(t, db, alice.ID, "P1")

	if _, err := db.Exec(`DROP TABLE activity_logs`); err != nil {
		t.Fatalf("failed to drop activity table: %v", err)
	}

	task, err := db.CreateTask(ctx, alice.ID, model.NewTask{ProjectID: p.ID, Title: "still works"})
	if err != nil {
		t.Fatalf("create should succeed without the activity log: %v", err)
	}
	status := model.StatusCompleted
	if _, err := db.UpdateTask(ctx, task.ID, alice.ID, model.TaskUpdate{Status: &status}); err != nil {
		t.Fatalf("update should succeed without the activity log: %v", err)
	}
	if err := db.DeleteTask(ctx, task.ID, alice.ID); err != nil {
		t.Fatalf("delete should succeed without the activity log: %v", err)
	}

	if got := strings.Count(logs.String(), "activity log:"); got != 3 {
		t.Errorf("logged %d activity failures, want 3:\n%s", got, logs.String())
	}
}
