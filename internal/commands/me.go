package commands

import (
	"context"
	"flag"
	"io"

	"cbook/internal/config"
	"cbook/internal/exitcode"
	"cbook/internal/output"
	"cbook/internal/service"
)

func init() {
	Register(&MeCmd{})
}

// MeCmd implements the me command.
type MeCmd struct{}

func (c *MeCmd) Name() string      { return "me" }
func (c *MeCmd) Aliases() []string { return []string{"whoami"} }
func (c *MeCmd) Synopsis() string  { return "Show the current user" }
func (c *MeCmd) Usage() string     { return "cbook me [common flags]" }
func (c *MeCmd) NeedsAuth() bool   { return true }

func (c *MeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	env, err := svc.Me(ctx)
	if err != nil {
		return transportFailure(errOut, err)
	}

	output.FormatEnvelope(out, env)
	if !env.OK {
		return reportFailure(errOut, env)
	}
	return exitcode.Success
}
