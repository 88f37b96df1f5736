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

	Login(ctx context.Context) error
	Register(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Logout(ctx context.Context) error

	Brands(ctx context.Context) error
	Cars(ctx context.Context, args []string) error
	Car(ctx context.Context, args []string) error
	Services(ctx context.Context) error
	AddService(ctx context.Context, args []string) error
	RemoveService(ctx context.Context, args []string) error
	Selected(ctx context.Context) error

	Buy(ctx context.Context) error
	Receipt(ctx context.Context) error
	Finish(ctx context.Context) error

	History(ctx context.Context) error
	Purchase(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	Agent(ctx context.Context) error
}

const (
	guestHelp = "Available commands: login, register, forgot, reset, help, exit"
	userHelp  = "Available commands: brands, cars [brand], car <id>, services, add <id>, remove <id>, selected, " +
		"buy, receipt, finish, history, purchase <id>, profile, agent, passwd, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the storefront CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on a, passing the remaining tokens as arguments
// where the command takes any. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done or when the user types
// "exit" or "quit".
//
// A command error is rendered with userMessage; the loop itself never stops
// because of one.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("store %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if msg := userMessage(dispatch(ctx, a, cmd, args)); msg != "" {
			printlnFn(msg)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(userHelp)
		} else {
			printlnFn(guestHelp)
		}
		return nil

	case "login":
		return a.Login(ctx)
	case "register":
		return a.Register(ctx)
	case "forgot":
		return a.ForgotPassword(ctx)
	case "reset":
		return a.ResetPassword(ctx)
	case "passwd":
		return a.ChangePassword(ctx)
	case "logout":
		return a.Logout(ctx)

	case "brands":
		return a.Brands(ctx)
	case "cars":
		return a.Cars(ctx, args)
	case "car":
		return a.Car(ctx, args)
	case "services":
		return a.Services(ctx)
	case "add":
		return a.AddService(ctx, args)
	case "remove":
		return a.RemoveService(ctx, args)
	case "selected":
		return a.Selected(ctx)

	case "buy":
		return a.Buy(ctx)
	case "receipt":
		return a.Receipt(ctx)
	case "finish":
		return a.Finish(ctx)

	case "history":
		return a.History(ctx)
	case "purchase":
		return a.Purchase(ctx, args)
	case "profile":
		return a.Profile(ctx)
	case "agent":
		return a.Agent(ctx)
	}

	printlnFn("Unknown command:", cmd)
	return nil
}
