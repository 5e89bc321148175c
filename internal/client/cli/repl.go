package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	CheckIn(ctx context.Context) error
	Recent(ctx context.Context, args []string) error
	AddDiaryEntry(ctx context.Context, args []string) error
	Entries(ctx context.Context) error
	Symptoms(ctx context.Context) error
	Measure(ctx context.Context, args []string) error
	Tasks(ctx context.Context) error
	Toggle(ctx context.Context, args []string) error
	Tips(ctx context.Context, args []string) error
	Report(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, tips, symptoms, help, exit"
	helpLoggedIn  = "Available commands: checkin, recent [n], diary [symptom numbers], entries, symptoms, " +
		"measure [kind value], tasks, toggle <task>, tips [guide], report, logout, delete, help, exit"
)

// runREPL reads commands from reader and dispatches them to a until EOF,
// "exit"/"quit", or ctx ends. Handler errors are reported by the handlers
// themselves, so the loop ignores them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("care %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "delete":
			_ = a.DeleteAccount(ctx)

		case "checkin":
			_ = a.CheckIn(ctx)

		case "recent":
			_ = a.Recent(ctx, args)

		case "diary":
			_ = a.AddDiaryEntry(ctx, args)

		case "entries":
			_ = a.Entries(ctx)

		case "symptoms":
			_ = a.Symptoms(ctx)

		case "measure":
			_ = a.Measure(ctx, args)

		case "tasks":
			_ = a.Tasks(ctx)

		case "toggle":
			if len(args) == 0 {
				printlnFn("Usage: toggle <task number or id>")
				continue
			}
			_ = a.Toggle(ctx, args)

		case "tips":
			_ = a.Tips(ctx, args)

		case "report":
			_ = a.Report(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
