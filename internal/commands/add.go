package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "todo add <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, mgr *task.Manager, args []string, out, errOut io.Writer) int {
	// Join args to form the text; it is stored as given.
	text := strings.Join(args, " ")

	if err := mgr.Apply(ctx, task.Add(text)); err != nil {
		if errors.Is(err, task.ErrBlankText) {
			fmt.Fprintf(errOut, "error: %s\n", blankAddMessage)
			return exitcode.UserError
		}
		return reportMutation(errOut, mgr.Len()+1, err)
	}

	printOK(cfg, out)
	return exitcode.Success
}
