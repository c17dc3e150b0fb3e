package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/task"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It flips the completed state, so
// running it twice on a task reopens it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle tasks completed" }
func (c *DoneCmd) Usage() string     { return "todo done <n...>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, mgr *task.Manager, args []string, out, errOut io.Writer) int {
	nums, err := ParseTaskRefs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if num, bad := firstOutOfRange(nums, mgr.Len()); bad {
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
		return exitcode.UserError
	}

	for _, num := range nums {
		if err := mgr.Apply(ctx, task.Toggle(num-1)); err != nil {
			return reportMutation(errOut, num, err)
		}
	}

	printOK(cfg, out)
	return exitcode.Success
}
