package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasko/internal/config"
	"tasko/internal/exitcode"
	"tasko/internal/store"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasko help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tasko                                                List tasks
  tasko list [common flags] [--filter <all|active|completed>]
  tasko add [common flags] <description...>
  tasko done [common flags] [--filter <all|active|completed>] <n>
  tasko rm [common flags] [--filter <all|active|completed>] <n>
  tasko ui [common flags]
  tasko login [common flags]
  tasko logout [common flags]
  tasko help
  tasko version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
