// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/task"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or changes the task list.
	// Commands like help, version, login, logout return false.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, settings).
	// mgr is nil if NeedsStore() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, mgr *task.Manager, args []string, out, errOut io.Writer) int
}

// blankAddMessage is shown when add is given nothing to add.
const blankAddMessage = "You must write something!"

// reportMutation prints err from a Manager mutation on task number num and
// returns the exit code for it.
func reportMutation(errOut io.Writer, num int, err error) int {
	switch {
	case errors.Is(err, task.ErrBlankText):
		fmt.Fprintf(errOut, "error: %v\n", task.ErrBlankText)
		return exitcode.UserError
	case errors.Is(err, task.ErrOutOfRange):
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: store error: %v\n", err)
		return exitcode.BackendError
	}
}

// printOK prints the success marker unless quiet.
func printOK(cfg *config.Config, out io.Writer) {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
}
