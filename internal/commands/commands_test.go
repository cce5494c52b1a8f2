package commands

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"

	"cbook/internal/config"
	"cbook/internal/exitcode"
	"cbook/internal/service"
	"cbook/internal/testutil"
)

// runCmd parses argv against a fresh flag set and runs the command the way
// the dispatcher does: flags first, positionals after.
func runCmd(t *testing.T, cmd Command, svc service.Service, quiet bool, argv ...string) (int, string, string) {
	t.Helper()

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(argv); err != nil {
		t.Fatalf("flag parse: %v", err)
	}

	cfg := &config.Config{Dir: t.TempDir(), BaseURL: "http://localhost:8000", Quiet: quiet}
	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), cfg, svc, fs.Args(), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersionCmd(t *testing.T) {
	code, out, _ := runCmd(t, &VersionCmd{}, nil, false)
	if code != exitcode.Success {
		t.Errorf("exit code = %d, want %d", code, exitcode.Success)
	}
	if out != "cbook 0.1.0\n" {
		t.Errorf("output = %q, want %q", out, "cbook 0.1.0\n")
	}
}

func TestHelpCmd(t *testing.T) {
	code, out, _ := runCmd(t, &HelpCmd{}, nil, false)
	if code != exitcode.Success {
		t.Errorf("exit code = %d, want %d", code, exitcode.Success)
	}
	testutil.GoldenString(t, "help", out)
}

func TestListCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddContact("Ann", "Lee", "ann@example.com", "555-0100", "1990-05-01")
	svc.AddContact("Bob", "", "bob@example.com", "", "")

	code, out, _ := runCmd(t, &ListCmd{}, svc, false)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d, want %d", code, exitcode.Success)
	}
	testutil.GoldenString(t, "list", out)
}

func TestListCmdFilters(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddContact("Ann", "Lee", "ann@example.com", "", "")
	svc.AddContact("Bob", "Ray", "bob@example.com", "", "")

	// Substring match, case-insensitive, like the backend's ilike filters.
	code, out, _ := runCmd(t, &ListCmd{}, svc, false, "--first", "an")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "Ann Lee") || strings.Contains(out, "Bob") {
		t.Errorf("filtered output wrong:\n%s", out)
	}
}

func TestListCmdEmpty(t *testing.T) {
	code, out, _ := runCmd(t, &ListCmd{}, testutil.NewFakeService(), false)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if out != "no contacts found\n" {
		t.Errorf("output = %q", out)
	}

	_, out, _ = runCmd(t, &ListCmd{}, testutil.NewFakeService(), true)
	if out != "" {
		t.Errorf("quiet output = %q, want empty", out)
	}
}

func TestListCmdRejectsArgs(t *testing.T) {
	code, _, errOut := runCmd(t, &ListCmd{}, testutil.NewFakeService(), false, "extra")
	if code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "unexpected argument") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestListCmdAuthRejected(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.RejectAll = 401

	code, _, errOut := runCmd(t, &ListCmd{}, svc, false)
	if code != exitcode.AuthError {
		t.Errorf("exit code = %d, want %d", code, exitcode.AuthError)
	}
	if !strings.Contains(errOut, "cbook refresh or cbook login") {
		t.Errorf("stderr = %q, want re-auth hint", errOut)
	}
}

func TestListCmdTransportError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListErr = errors.New("connection refused")

	code, _, errOut := runCmd(t, &ListCmd{}, svc, false)
	if code != exitcode.BackendError {
		t.Errorf("exit code = %d, want %d", code, exitcode.BackendError)
	}
	if !strings.Contains(errOut, "backend unreachable") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestAddCmd(t *testing.T) {
	svc := testutil.NewFakeService()

	code, out, _ := runCmd(t, &AddCmd{}, svc, false,
		"--first", "Ann", "--email", "ann@example.com", "--phone", "555")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if out != "ok\n" {
		t.Errorf("output = %q", out)
	}

	snap := svc.Snapshot()
	if len(snap) != 1 || snap[0].FirstName != "Ann" || snap[0].Phone != "555" {
		t.Errorf("snapshot after add = %+v", snap)
	}
}

func TestAddCmdRequiredFlags(t *testing.T) {
	code, _, errOut := runCmd(t, &AddCmd{}, testutil.NewFakeService(), false, "--first", "Ann")
	if code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "--first and --email are required") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestSetCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddContact("Ann", "Lee", "ann@example.com", "000", "")

	code, out, _ := runCmd(t, &SetCmd{}, svc, false, "--phone", "123", "1")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if out != "ok\n" {
		t.Errorf("output = %q", out)
	}

	snap := svc.Snapshot()
	if len(snap) != 1 || snap[0].Phone != "123" || snap[0].FirstName != "Ann" {
		t.Errorf("snapshot after set = %+v", snap)
	}
}

func TestSetCmdExplicitEmptyClearsField(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddContact("Ann", "Lee", "ann@example.com", "000", "")

	// --phone "" is a real patch; only omitted flags stay untouched.
	code, _, _ := runCmd(t, &SetCmd{}, svc, false, "--phone", "", "1")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if snap := svc.Snapshot(); snap[0].Phone != "" {
		t.Errorf("phone = %q, want cleared", snap[0].Phone)
	}
}

func TestSetCmdNothingToUpdate(t *testing.T) {
	code, _, errOut := runCmd(t, &SetCmd{}, testutil.NewFakeService(), false, "1")
	if code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "nothing to update") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRmCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddContact("Ann", "", "ann@example.com", "", "")

	code, out, _ := runCmd(t, &RmCmd{}, svc, false, "1")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if out != "ok\n" {
		t.Errorf("output = %q", out)
	}
	if snap := svc.Snapshot(); len(snap) != 0 {
		t.Errorf("snapshot after rm = %+v", snap)
	}
}

func TestRmCmdInvalidID(t *testing.T) {
	code, _, errOut := runCmd(t, &RmCmd{}, testutil.NewFakeService(), false, "abc")
	if code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "invalid contact id") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRmCmdNotFound(t *testing.T) {
	code, _, errOut := runCmd(t, &RmCmd{}, testutil.NewFakeService(), false, "42")
	if code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "status 404") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestUpcomingCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddContact("Ann", "Lee", "ann@example.com", "", "1990-05-01")
	svc.AddContact("Bob", "", "bob@example.com", "", "")

	code, out, _ := runCmd(t, &UpcomingCmd{}, svc, false)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if out != "Ann Lee - 1990-05-01\n" {
		t.Errorf("output = %q", out)
	}
}

func TestUpcomingCmdInvalidDays(t *testing.T) {
	code, _, errOut := runCmd(t, &UpcomingCmd{}, testutil.NewFakeService(), false, "--days", "0")
	if code != exitcode.UserError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "invalid day count") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestLoginCmdStoresSession(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser("ann@example.com", "hunter2")

	code, out, _ := runCmd(t, &LoginCmd{}, svc, false, "ann@example.com", "hunter2")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if out != "ok\n" {
		t.Errorf("output = %q", out)
	}
}

func TestLoginCmdBadCredentials(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser("ann@example.com", "hunter2")

	code, _, errOut := runCmd(t, &LoginCmd{}, svc, false, "ann@example.com", "wrong")
	if code != exitcode.AuthError {
		t.Errorf("exit code = %d, want %d", code, exitcode.AuthError)
	}
	if errOut == "" {
		t.Error("expected an error line on stderr")
	}
}

func TestAliases(t *testing.T) {
	for alias, name := range map[string]string{
		"create":    "add",
		"update":    "set",
		"delete":    "rm",
		"birthdays": "upcoming",
		"whoami":    "me",
	} {
		cmd, ok := DefaultRegistry.Find(alias)
		if !ok {
			t.Errorf("alias %q not registered", alias)
			continue
		}
		if cmd.Name() != name {
			t.Errorf("alias %q resolves to %q, want %q", alias, cmd.Name(), name)
		}
	}
}
