// Package testsupport builds the taskflow binary and wires it into
// testscript scripts.
package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce    sync.Once
	taskflowPath string
	buildErr     error
)

// BuildTaskflow builds the taskflow binary once and returns its path.
func BuildTaskflow(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "taskflow-bin-")
		if err != nil {
			buildErr = err
			return
		}

		taskflowPath = filepath.Join(binDir, "taskflow")
		cmd := exec.Command("go", "build", "-o", taskflowPath, "./cmd/taskflow")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build taskflow: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return taskflowPath
}

// SetupScriptEnv points a script at the binary and at a database inside its
// work directory.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TASKFLOW", BuildTaskflow(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("TASKFLOW_DB", filepath.Join(env.WorkDir, "taskflow.db"))
	env.Setenv("TASKFLOW_JWT_SECRET", "script-secret")
	// bcrypt.MinCost
	env.Setenv("TASKFLOW_BCRYPT_COST", "4")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdIDOf finds a record by title in a JSON object or array and stores its
// id in an env var.
func CmdIDOf(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("idof does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: idof FILE TITLE VAR")
	}

	type record struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}

	data := []byte(ts.ReadFile(args[0]))
	var items []record
	if err := json.Unmarshal(data, &items); err != nil {
		var one record
		if err := json.Unmarshal(data, &one); err != nil {
			ts.Fatalf("parse %s: %v", args[0], err)
		}
		items = []record{one}
	}

	title := args[1]
	for _, item := range items {
		if item.Title == title {
			ts.Setenv(args[2], strconv.FormatInt(item.ID, 10))
			return
		}
	}

	ts.Fatalf("record with title %q not found", title)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
