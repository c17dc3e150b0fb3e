package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/task"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	output string
}

// SetOptions sets the --format and --output flags (for testing).
func (c *ExportCmd) SetOptions(format, output string) {
	c.format, c.output = format, output
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Write the list as json, yaml, csv or pdf" }
func (c *ExportCmd) Usage() string {
	return "todo export [--format json|yaml|csv|pdf] [--output <file>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", output.FormatJSON, "")
	fs.StringVar(&c.output, "output", "", "")
	fs.StringVar(&c.output, "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, mgr *task.Manager, args []string, out, errOut io.Writer) int {
	format := strings.ToLower(c.format)
	switch format {
	case "":
		format = output.FormatJSON
	case "yml":
		format = output.FormatYAML
	}
	if !slices.Contains(output.Formats, format) {
		fmt.Fprintf(errOut, "error: %v: %s\n", output.ErrUnknownFormat, c.format)
		return exitcode.UserError
	}

	if c.output == "" {
		if err := output.Export(out, format, mgr.Tasks()); err != nil {
			fmt.Fprintf(errOut, "error: export failed: %v\n", err)
			return exitcode.BackendError
		}
		return exitcode.Success
	}

	if err := exportFile(c.output, format, mgr.Tasks()); err != nil {
		fmt.Fprintf(errOut, "error: export failed: %v\n", err)
		return exitcode.UserError
	}
	printOK(cfg, out)
	return exitcode.Success
}

// exportFile writes tasks to path. The file is only reported written once it
// has been closed without error.
func exportFile(path, format string, tasks []task.Task) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return output.Export(f, format, tasks)
}
