package main

import (
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/GokulM8/taskflow/internal/testsupport"
)

func runScripts(t *testing.T, dir string) {
	testscript.Run(t, testscript.Params{
		Dir: dir,
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"envset": testsupport.CmdEnvSet,
			"idof":   testsupport.CmdIDOf,
		},
	})
}

func TestAccountScripts(t *testing.T) {
	runScripts(t, "testdata/account")
}

func TestProjectScripts(t *testing.T) {
	runScripts(t, "testdata/projects")
}

func TestTaskScripts(t *testing.T) {
	runScripts(t, "testdata/tasks")
}

func TestReportScripts(t *testing.T) {
	runScripts(t, "testdata/reports")
}
