package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/colisroute/colis/internal/client/services"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	path  services.Path
	calls []string
}

func (f *fakeExec) currentPath() services.Path { return f.path }

func (f *fakeExec) rec(name string, args ...string) error {
	if len(args) > 0 {
		name += " " + strings.Join(args, " ")
	}
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) Register(context.Context) error { return f.rec("register") }
func (f *fakeExec) Login(context.Context) error {
	f.path = services.PathSenderHome
	return f.rec("login")
}
func (f *fakeExec) GoogleLogin(context.Context) error {
	f.path = services.PathRoleSelection
	return f.rec("google")
}
func (f *fakeExec) SelectRole(context.Context) error {
	f.path = services.PathTransporterHome
	return f.rec("role")
}
func (f *fakeExec) Search(context.Context) error                   { return f.rec("search") }
func (f *fakeExec) Book(_ context.Context, a []string) error       { return f.rec("book", a...) }
func (f *fakeExec) Bookings(context.Context) error                 { return f.rec("bookings") }
func (f *fakeExec) Trips(context.Context) error                    { return f.rec("trips") }
func (f *fakeExec) AddTrip(context.Context) error                  { return f.rec("addtrip") }
func (f *fakeExec) ShowTrip(_ context.Context, a []string) error   { return f.rec("trip", a...) }
func (f *fakeExec) DeleteTrip(_ context.Context, a []string) error { return f.rec("deltrip", a...) }
func (f *fakeExec) Profile(context.Context) error                  { return f.rec("profile") }
func (f *fakeExec) Phone(context.Context) error                    { return f.rec("phone") }
func (f *fakeExec) Vehicle(context.Context) error                  { return f.rec("vehicle") }
func (f *fakeExec) Photo(_ context.Context, a []string) error      { return f.rec("photo", a...) }
func (f *fakeExec) Whoami(context.Context) error                   { return f.rec("whoami") }
func (f *fakeExec) Logout(context.Context) error {
	f.path = services.PathLogin
	return f.rec("logout")
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func run(exec *fakeExec, lines ...string) {
	sc := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "" }, sc)
}

func TestRunREPL_SenderFlow(t *testing.T) {
	out := captureOutput(t)
	exec := &fakeExec{path: services.PathLogin}

	run(exec, "search", "login", "", "search", "book 42", "bookings", "trips", "logout", "exit", "login")

	assert.Equal(t, []string{"login", "search", "book 42", "bookings", "logout"}, exec.calls)
	assert.Contains(t, *out, "Unknown command: search")
	assert.Contains(t, *out, "Unknown command: trips")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_GoogleRoleSelectionThenTransporter(t *testing.T) {
	captureOutput(t)
	exec := &fakeExec{path: services.PathLogin}

	run(exec, "google", "trips", "role", "trips", "trip 7", "deltrip 7", "photo me.png", "addtrip", "quit")

	assert.Equal(t, []string{"google", "role", "trips", "trip 7", "deltrip 7", "photo me.png", "addtrip"}, exec.calls)
}

func TestRunREPL_HelpFollowsScreen(t *testing.T) {
	out := captureOutput(t)
	exec := &fakeExec{path: services.PathLogin}

	run(exec, "help", "login", "help")

	assert.Contains(t, *out, "Available commands: login, register, google, exit")
	assert.Contains(t, *out, "Available commands: search, book, bookings, profile, phone, whoami, logout, exit")
}

func TestRunREPL_EOF(t *testing.T) {
	captureOutput(t)
	exec := &fakeExec{path: services.PathLogin}
	run(exec)
	assert.Empty(t, exec.calls)
}
