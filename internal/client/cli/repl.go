package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
	Status(ctx context.Context) error
}

const helpText = "Available commands: (l)ist [query], search <query>, show <id>, add, edit <id>, delete <id>, refresh, retry, status, exit"

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on a. The prompt shows the status from statusFn.
// The loop exits on EOF, when ctx is done, or when the user types "exit" or
// "quit".
//
// Handler errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "userdir %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		eof := err != nil

		parts := strings.Fields(line)
		if len(parts) == 0 {
			if eof {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			fmt.Fprintln(w, helpText)

		case "l", "list":
			cmdErr = a.List(ctx, args)

		case "search":
			if len(args) == 0 {
				cmdErr = fmt.Errorf("%w: search <query>", errUsage)
				break
			}
			cmdErr = a.List(ctx, args)

		case "show":
			cmdErr = a.Show(ctx, args)

		case "add":
			cmdErr = a.Add(ctx)

		case "edit":
			cmdErr = a.Edit(ctx, args)

		case "delete", "rm":
			cmdErr = a.Delete(ctx, args)

		case "refresh", "retry":
			cmdErr = a.Refresh(ctx)

		case "status":
			cmdErr = a.Status(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			reportError(w, cmdErr)
		}
		if eof {
			return
		}
	}
}

func reportError(w io.Writer, err error) {
	var fe FormErrors
	switch {
	case errors.As(err, &fe):
		for _, line := range strings.Split(fe.Error(), "; ") {
			fmt.Fprintln(w, "  "+line)
		}
	case errors.Is(err, errShown):
	default:
		fmt.Fprintln(w, "Error:", err)
	}
}
