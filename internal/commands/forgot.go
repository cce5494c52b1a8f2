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
	Register(&ForgotCmd{})
}

// ForgotCmd implements the forgot command.
type ForgotCmd struct{}

func (c *ForgotCmd) Name() string      { return "forgot" }
func (c *ForgotCmd) Aliases() []string { return nil }
func (c *ForgotCmd) Synopsis() string  { return "Request a password reset email" }
func (c *ForgotCmd) Usage() string     { return "cbook forgot <email>" }
func (c *ForgotCmd) NeedsAuth() bool   { return false }

func (c *ForgotCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ForgotCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}

	env, err := svc.ForgotPassword(ctx, args[0])
	if err != nil {
		return transportFailure(errOut, err)
	}

	output.FormatEnvelope(out, env)
	if !env.OK {
		return reportFailure(errOut, env)
	}
	return exitcode.Success
}
