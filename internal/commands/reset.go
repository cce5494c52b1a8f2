package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"cbook/internal/config"
	"cbook/internal/exitcode"
	"cbook/internal/output"
	"cbook/internal/service"
)

func init() {
	Register(&ResetCmd{})
}

// ResetCmd implements the reset command.
type ResetCmd struct{}

func (c *ResetCmd) Name() string      { return "reset" }
func (c *ResetCmd) Aliases() []string { return nil }
func (c *ResetCmd) Synopsis() string  { return "Set a new password with a reset token" }
func (c *ResetCmd) Usage() string     { return "cbook reset <token> <new-password>" }
func (c *ResetCmd) NeedsAuth() bool   { return false }

func (c *ResetCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ResetCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: token and new password required")
		return exitcode.UserError
	}

	env, err := svc.ResetPassword(ctx, args[0], args[1])
	if err != nil {
		return transportFailure(errOut, err)
	}

	output.FormatEnvelope(out, env)
	if !env.OK {
		return reportFailure(errOut, env)
	}
	// A successful reset does not log in; the next step is cbook login.
	return exitcode.Success
}
