package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"cbook/internal/config"
	"cbook/internal/exitcode"
	"cbook/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a contact" }
func (c *RmCmd) Usage() string     { return "cbook rm <id>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: contact id required")
		return exitcode.UserError
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid contact id: %s\n", args[0])
		return exitcode.UserError
	}

	env, err := svc.DeleteContact(ctx, id)
	if err != nil {
		return transportFailure(errOut, err)
	}
	if !env.OK {
		return reportFailure(errOut, env)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
