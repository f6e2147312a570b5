package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Open(ctx context.Context, path string) error
	Home(ctx context.Context) error
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Users(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Analytics(ctx context.Context) error
	Settings(ctx context.Context) error
	Set(ctx context.Context, args []string) error
	Export(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Verify(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: open <path>, home, login, signup, exit"
	helpLoggedIn  = "Available commands: open <path>, home, dashboard, users [search] [-status s] [-page n], " +
		"edit <id>, delete <id>, analytics, settings, set <emails|dark> <on|off>, export, whoami, verify, logout, exit"
)

// runREPL starts the read–eval–print loop of the dashboard.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, on context cancellation or when the user
// types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures through the notifier.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(fmt.Sprintf("dash %s> ", statusFn()))

		line, err := readLine(reader)
		if err != nil {
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
				printlnFn(helpAnonymous)
			}

		case "open":
			if len(args) != 1 {
				printlnFn("Usage: open <path>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "home":
			_ = a.Home(ctx)

		case "login":
			_ = a.Login(ctx)

		case "signup", "register":
			_ = a.Signup(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "users":
			_ = a.Users(ctx, args)

		case "edit":
			_ = a.Edit(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "analytics":
			_ = a.Analytics(ctx)

		case "settings":
			_ = a.Settings(ctx)

		case "set":
			_ = a.Set(ctx, args)

		case "export":
			_ = a.Export(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
