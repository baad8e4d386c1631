package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"tasko/internal/commands"
	"tasko/internal/config"
	"tasko/internal/exitcode"
	"tasko/internal/service"
	"tasko/internal/store"
	"tasko/internal/testutil"
)

// runCommand is a helper to run a command against a store backed by a
// FakeService (no cache).
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:      t.TempDir(),
		Settings: config.DefaultSettings(),
		Quiet:    quiet,
	}

	var st *store.Store
	if svc != nil {
		st = store.New(svc, nil, nil)
	}

	code = cmd.Run(context.Background(), cfg, st, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "tasko 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "help", stdout)
}

// Tests for list command
func TestListCommand_TasksWithStats(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Buy milk", false)
	svc.AddTask("2", "Buy eggs", true)

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	expected := "   1  [ ] Buy milk\n   2  [x] Buy eggs\n2 tasks: 1 active, 1 completed\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected 'no tasks found', got %q", stdout)
	}
}

func TestListCommand_CompletedFilter(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Buy milk", false)
	svc.AddTask("2", "Write report", true)
	svc.AddTask("3", "Call plumber", false)

	cmd := &commands.ListCmd{}
	cmd.SetFilterName("completed")
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}

	expected := "   1  [x] Write report\n3 tasks: 2 active, 1 completed\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_InvalidFilter(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ListCmd{}
	cmd.SetFilterName("done")
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid filter: done\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestListCommand_Quiet(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Buy milk", false)

	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, svc, nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "   1  [ ] Buy milk\n" {
		t.Errorf("expected task line only, got %q", stdout)
	}
}

func TestListCommand_BackendDownDegradesSilently(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = service.ErrNetwork

	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected empty view, got %q", stdout)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Buy", "milk"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}

	tasks, _ := svc.ListTasks(context.Background())
	if len(tasks) != 1 || tasks[0].Description != "Buy milk" {
		t.Errorf("unexpected backend state: %+v", tasks)
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	stdout, _, code := runCommand(t, cmd, svc, []string{"Buy milk"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
}

func TestAddCommand_EmptyDescription(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	for _, args := range [][]string{nil, {""}, {"  ", "\t"}} {
		_, stderr, code := runCommand(t, cmd, svc, args, false)
		if code != exitcode.UserError {
			t.Errorf("args %q: expected exit code %d, got %d", args, exitcode.UserError, code)
		}
		if stderr != "error: description required\n" {
			t.Errorf("args %q: unexpected stderr: %q", args, stderr)
		}
	}
}

func TestAddCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = service.ErrNetwork

	cmd := &commands.AddCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"Buy milk"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr == "" {
		t.Error("expected error output")
	}
}

// Tests for done command
func TestDoneCommand_TogglesByNumber(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Buy milk", false)
	svc.AddTask("2", "Buy eggs", false)

	cmd := &commands.DoneCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}

	tasks, _ := svc.ListTasks(context.Background())
	if tasks[0].Completed || !tasks[1].Completed {
		t.Errorf("wrong task toggled: %+v", tasks)
	}
}

func TestDoneCommand_NumberResolvesWithinFilter(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Write report", true)
	svc.AddTask("2", "Buy milk", false)

	// Number 1 in the active view is "Buy milk", not "Write report".
	cmd := &commands.DoneCmd{}
	cmd.SetFilterName("active")
	_, _, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	tasks, _ := svc.ListTasks(context.Background())
	if !tasks[1].Completed {
		t.Errorf("active view numbering not honored: %+v", tasks)
	}
}

func TestDoneCommand_OutOfRange(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Buy milk", false)

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"5"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number out of range: 5\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDoneCommand_InvalidNumber(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"abc"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid task number: abc\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDoneCommand_MissingArg(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number required\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for rm command
func TestRmCommand_DeletesByNumber(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Buy milk", false)
	svc.AddTask("2", "Buy eggs", false)

	cmd := &commands.RmCmd{}
	stdout, _, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}

	tasks, _ := svc.ListTasks(context.Background())
	if len(tasks) != 1 || tasks[0].ID != "2" {
		t.Errorf("wrong task deleted: %+v", tasks)
	}
}

func TestRmCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Buy milk", false)
	svc.DeleteTaskErr = service.ErrNetwork

	cmd := &commands.RmCmd{}
	_, _, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}

	tasks, _ := svc.ListTasks(context.Background())
	if len(tasks) != 1 {
		t.Errorf("task removed despite backend error: %+v", tasks)
	}
}

func TestRmCommand_GoneOnBackend(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Buy milk", false)
	svc.DeleteTaskErr = service.ErrNotFound

	cmd := &commands.RmCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task not found: 1\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for logout command
func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	cmd := &commands.LogoutCmd{}
	stdout, _, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
}

func TestLogoutCommand_RemovesToken(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir(), Settings: config.DefaultSettings()}

	if err := os.WriteFile(cfg.TokenPath(), []byte(`{"access_token":"x"}`), 0600); err != nil {
		t.Fatalf("failed to seed token: %v", err)
	}

	cmd := &commands.LogoutCmd{}
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("unexpected stdout: %q", outBuf.String())
	}
	if _, err := os.Stat(cfg.TokenPath()); !os.IsNotExist(err) {
		t.Error("token file still present after logout")
	}
}

// Tests for login command (pre-flight only; the browser flow needs a
// real OAuth client)
func TestLoginCommand_MissingOAuthClient(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir(), Settings: config.DefaultSettings()}

	cmd := &commands.LoginCmd{}
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !bytes.Contains(errBuf.Bytes(), []byte("oauth_client.json not found")) {
		t.Errorf("expected setup help, got %q", errBuf.String())
	}
	if !bytes.Contains(errBuf.Bytes(), []byte(filepath.Join(cfg.Dir, "oauth_client.json"))) {
		t.Errorf("expected config path in help, got %q", errBuf.String())
	}
}
