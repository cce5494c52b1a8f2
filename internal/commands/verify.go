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
	Register(&VerifyCmd{})
}

// VerifyCmd implements the verify command.
type VerifyCmd struct{}

func (c *VerifyCmd) Name() string      { return "verify" }
func (c *VerifyCmd) Aliases() []string { return nil }
func (c *VerifyCmd) Synopsis() string  { return "Confirm an email address" }
func (c *VerifyCmd) Usage() string     { return "cbook verify <token>" }
func (c *VerifyCmd) NeedsAuth() bool   { return false }

func (c *VerifyCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VerifyCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: verification token required")
		return exitcode.UserError
	}

	env, err := svc.VerifyEmail(ctx, args[0])
	if err != nil {
		return transportFailure(errOut, err)
	}

	output.FormatEnvelope(out, env)
	if !env.OK {
		return reportFailure(errOut, env)
	}
	return exitcode.Success
}
