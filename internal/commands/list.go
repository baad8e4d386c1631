package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasko/internal/config"
	"tasko/internal/exitcode"
	"tasko/internal/output"
	"tasko/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `tasko` (no args) and `tasko list`.
//
// The view renders whatever the controller holds after initialization:
// a failed remote fetch degrades silently to the cached snapshot, with
// a diagnostic on stderr from the logger rather than a hard error.
type ListCmd struct {
	filterName string
}

// SetFilterName sets the filter flag value (for testing).
func (c *ListCmd) SetFilterName(name string) {
	c.filterName = name
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "tasko list [--filter <all|active|completed>]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filterName, "filter", "", "")
	fs.StringVar(&c.filterName, "f", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintln(errOut, "error: list takes no arguments")
		return exitcode.UserError
	}

	filter, err := resolveFilter(c.filterName, cfg.Settings.DefaultFilter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	st.SetFilter(filter)

	st.Initialize(ctx)

	filtered := st.Filtered()
	for i, task := range filtered {
		output.FormatTask(out, i+1, task)
	}

	if len(filtered) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	if stats := st.Stats(); stats.Total > 0 && !cfg.Quiet {
		output.FormatStats(out, stats)
	}

	return exitcode.Success
}
