package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  map[string][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register", nil)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) DeleteAccount(ctx context.Context) error { return f.record("delete", nil) }
func (f *fakeExec) CheckIn(ctx context.Context) error       { return f.record("checkin", nil) }
func (f *fakeExec) Recent(ctx context.Context, args []string) error {
	return f.record("recent", args)
}
func (f *fakeExec) AddDiaryEntry(ctx context.Context, args []string) error {
	return f.record("diary", args)
}
func (f *fakeExec) Entries(ctx context.Context) error  { return f.record("entries", nil) }
func (f *fakeExec) Symptoms(ctx context.Context) error { return f.record("symptoms", nil) }
func (f *fakeExec) Measure(ctx context.Context, args []string) error {
	return f.record("measure", args)
}
func (f *fakeExec) Tasks(ctx context.Context) error { return f.record("tasks", nil) }
func (f *fakeExec) Toggle(ctx context.Context, args []string) error {
	return f.record("toggle", args)
}
func (f *fakeExec) Tips(ctx context.Context, args []string) error {
	return f.record("tips", args)
}
func (f *fakeExec) Report(ctx context.Context) error { return f.record("report", nil) }

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := capturePrints(t)

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"checkin",
		"recent 3",
		"diary 1 4",
		"",
		"entries",
		"measure weight 72.5",
		"tasks",
		"toggle",
		"toggle water",
		"tips mobility",
		"report",
		"foobar",
		"logout",
		"exit",
		"register",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(Ann)" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login", "checkin", "recent", "diary", "entries", "measure",
		"tasks", "toggle", "tips", "report", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"3"}, exec.args["recent"])
	assert.Equal(t, []string{"1", "4"}, exec.args["diary"])
	assert.Equal(t, []string{"weight", "72.5"}, exec.args["measure"])
	assert.Equal(t, []string{"water"}, exec.args["toggle"])

	assert.Contains(t, *out, helpLoggedOut)
	assert.Contains(t, *out, helpLoggedIn)
	assert.Contains(t, *out, "Usage: toggle <task number or id>")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "care (Ann)> ")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("register")))

	assert.Equal(t, []string{"register"}, exec.calls)
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	capturePrints(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("login\n")))

	assert.Empty(t, exec.calls)
}
