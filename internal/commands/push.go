package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/backend/googletasks"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/task"
)

// Pusher copies the local list to a remote task list.
type Pusher interface {
	Push(ctx context.Context, title string, tasks []task.Task) error
}

// PusherFactory creates the Pusher for push.
type PusherFactory func(ctx context.Context, cfg *config.Config) (Pusher, error)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command.
type PushCmd struct {
	listName string

	// NewPusher overrides the Google Tasks client (for testing).
	NewPusher PusherFactory
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Replace a Google Tasks list with this list" }
func (c *PushCmd) Usage() string     { return "todo push [--list <list-name>]" }
func (c *PushCmd) NeedsStore() bool  { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

// SetListName sets the list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, mgr *task.Manager, args []string, out, errOut io.Writer) int {
	title := c.listName
	if title == "" {
		title = cfg.GoogleList()
	}

	factory := c.NewPusher
	if factory == nil {
		if !cfg.HasOAuthClient() {
			fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n", cfg.Dir)
			return exitcode.AuthError
		}
		if !cfg.HasToken() {
			fmt.Fprintln(errOut, "error: not logged in (run: todo login)")
			return exitcode.AuthError
		}
		factory = func(ctx context.Context, cfg *config.Config) (Pusher, error) {
			return googletasks.New(ctx, cfg)
		}
	}

	pusher, err := factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}
	if err := pusher.Push(ctx, title, mgr.Tasks()); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	printOK(cfg, out)
	return exitcode.Success
}
