package cli

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/colisroute/colis/internal/client/services"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it; tests
// provide a lightweight stub.
type execIface interface {
	currentPath() services.Path

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	GoogleLogin(ctx context.Context) error
	SelectRole(ctx context.Context) error

	Search(ctx context.Context) error
	Book(ctx context.Context, args []string) error
	Bookings(ctx context.Context) error

	Trips(ctx context.Context) error
	AddTrip(ctx context.Context) error
	ShowTrip(ctx context.Context, args []string) error
	DeleteTrip(ctx context.Context, args []string) error

	Profile(ctx context.Context) error
	Phone(ctx context.Context) error
	Vehicle(ctx context.Context) error
	Photo(ctx context.Context, args []string) error

	Whoami(ctx context.Context) error
	Logout(ctx context.Context) error
}

// commands lists what each screen offers, in help order.
var commands = map[services.Path][]string{
	services.PathLogin:           {"login", "register", "google"},
	services.PathRoleSelection:   {"role", "logout"},
	services.PathSenderHome:      {"search", "book", "bookings", "profile", "phone", "whoami", "logout"},
	services.PathTransporterHome: {"trips", "addtrip", "trip", "deltrip", "profile", "phone", "vehicle", "photo", "whoami", "logout"},
}

// runREPL reads commands from scanner and dispatches them to a until EOF or
// "exit"/"quit". A command is accepted only on the screen the current auth
// state routes to. Handler errors are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("colis %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands:", strings.Join(append(slices.Clone(commands[a.currentPath()]), "exit"), ", "))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !slices.Contains(commands[a.currentPath()], cmd) {
			printlnFn("Unknown command:", cmd)
			continue
		}

		switch cmd {
		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "google":
			_ = a.GoogleLogin(ctx)
		case "role":
			_ = a.SelectRole(ctx)
		case "search":
			_ = a.Search(ctx)
		case "book":
			_ = a.Book(ctx, args)
		case "bookings":
			_ = a.Bookings(ctx)
		case "trips":
			_ = a.Trips(ctx)
		case "addtrip":
			_ = a.AddTrip(ctx)
		case "trip":
			_ = a.ShowTrip(ctx, args)
		case "deltrip":
			_ = a.DeleteTrip(ctx, args)
		case "profile":
			_ = a.Profile(ctx)
		case "phone":
			_ = a.Phone(ctx)
		case "vehicle":
			_ = a.Vehicle(ctx)
		case "photo":
			_ = a.Photo(ctx, args)
		case "whoami":
			_ = a.Whoami(ctx)
		case "logout":
			_ = a.Logout(ctx)
		}
	}
}
