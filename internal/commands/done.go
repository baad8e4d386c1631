package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tasko/internal/config"
	"tasko/internal/exitcode"
	"tasko/internal/service"
	"tasko/internal/store"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles completion, so
// running it on a completed task reopens the task.
type DoneCmd struct {
	filterName string
}

// SetFilterName sets the filter flag value (for testing).
func (c *DoneCmd) SetFilterName(name string) {
	c.filterName = name
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "tasko done [--filter <all|active|completed>] <n>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filterName, "filter", "", "")
	fs.StringVar(&c.filterName, "f", "", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	num, err := parseTaskNum(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	filter, err := resolveFilter(c.filterName, cfg.Settings.DefaultFilter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// Numbers resolve against the same view the list command prints.
	st.Initialize(ctx)

	task, err := findTaskByNumber(st, filter, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := st.Toggle(ctx, task.ID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			fmt.Fprintf(errOut, "error: task not found: %d\n", num)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
